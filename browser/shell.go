package browser

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/fogleman/gg"
	"github.com/veandco/go-sdl2/sdl"

	"sentinel/config"
	"sentinel/logging"
	"sentinel/view"
)

const SCROLL_STEP = 100.

// Shell is the SDL window and its event handling. It rasterizes with gg and
// blits the RGBA buffer onto the window surface each frame.
type Shell struct {
	browser *Browser
	logger  *logging.Logger
	window  *sdl.Window
	surface *gg.Context
	chrome  *Chrome

	width, height int
	contentHeight float64
	focusedInput  *view.Input

	redMask, greenMask, blueMask, alphaMask uint32
}

func NewShell(b *Browser, cfg *config.Config, logger *logging.Logger) (*Shell, error) {
	s := &Shell{
		browser: b,
		logger:  logger.Named("shell"),
		width:   cfg.Viewport.Width,
		height:  cfg.Viewport.Height,
	}

	window, err := sdl.CreateWindow("Sentinel", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(s.width), int32(s.height), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	s.window = window
	s.surface = gg.NewContext(s.width, s.height)

	if sdl.BYTEORDER == sdl.BIG_ENDIAN {
		s.redMask = 0xff000000
		s.greenMask = 0x00ff0000
		s.blueMask = 0x0000ff00
		s.alphaMask = 0x000000ff
	} else {
		s.redMask = 0x000000ff
		s.greenMask = 0x0000ff00
		s.blueMask = 0x00ff0000
		s.alphaMask = 0xff000000
	}

	s.chrome, err = NewChrome(s)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("creating chrome: %w", err)
	}
	return s, nil
}

func (s *Shell) Draw() {
	tab := s.browser.ActiveTab()
	if tab == nil {
		return
	}
	page := tab.Page()

	// painting below the chrome strip: offset the scroll by its height
	s.contentHeight = page.Paint(s.surface, tab.Scroll()-s.chrome.bottom) - s.chrome.bottom
	s.chrome.paint(s.surface)
	s.blit()
}

func (s *Shell) blit() {
	img, ok := s.surface.Image().(*image.RGBA)
	if !ok {
		s.logger.Error("surface image is not RGBA")
		return
	}

	depth := 32
	pitch := 4 * s.width
	sdlSurface, err := sdl.CreateRGBSurfaceFrom(
		unsafe.Pointer(&img.Pix[0]),
		int32(s.width), int32(s.height), depth, pitch,
		s.redMask, s.greenMask, s.blueMask, s.alphaMask,
	)
	if err != nil {
		s.logger.Error("cannot create rgb surface: " + err.Error())
		return
	}
	defer sdlSurface.Free()

	bounds := &sdl.Rect{X: 0, Y: 0, W: int32(s.width), H: int32(s.height)}
	windowSurface, err := s.window.GetSurface()
	if err != nil {
		s.logger.Error("cannot get window surface: " + err.Error())
		return
	}
	sdlSurface.Blit(bounds, windowSurface, bounds)
	s.window.UpdateSurface()
}

func (s *Shell) HandleClick(e *sdl.MouseButtonEvent) {
	x, y := float64(e.X), float64(e.Y)
	s.focusedInput = nil
	if y < s.chrome.bottom {
		s.chrome.click(x, y)
		return
	}
	s.chrome.blur()

	tab := s.browser.ActiveTab()
	if tab == nil {
		return
	}
	node := tab.Page().HitTest(x, y-s.chrome.bottom+tab.Scroll())
	switch n := node.(type) {
	case *view.Button:
		if n.OnActivate != nil {
			n.OnActivate()
		}
	case *view.Link:
		if n.OnActivate != nil {
			n.OnActivate()
		}
	case *view.Input:
		s.focusedInput = n
	}
}

func (s *Shell) HandleKey(e *sdl.TextInputEvent) {
	char := e.GetText()[0]
	if !(0x20 <= char && char < 0x7f) {
		return
	}
	if s.chrome.keypress(rune(char)) {
		return
	}
	if s.focusedInput != nil {
		s.focusedInput.Value += string(char)
	}
}

func (s *Shell) HandleEnter() {
	if s.chrome.enter() {
		return
	}
	if s.focusedInput != nil && s.focusedInput.OnCommit != nil {
		s.focusedInput.OnCommit()
	}
}

func (s *Shell) HandleBackspace() {
	if s.chrome.backspace() {
		return
	}
	if input := s.focusedInput; input != nil && input.Value != "" {
		runes := []rune(input.Value)
		input.Value = string(runes[:len(runes)-1])
	}
}

func (s *Shell) HandleDown() {
	if tab := s.browser.ActiveTab(); tab != nil {
		tab.ScrollBy(SCROLL_STEP, s.contentHeight, float64(s.height)-s.chrome.bottom)
	}
}

func (s *Shell) HandleUp() {
	if tab := s.browser.ActiveTab(); tab != nil {
		tab.ScrollBy(-SCROLL_STEP, s.contentHeight, float64(s.height)-s.chrome.bottom)
	}
}

func (s *Shell) FocusAddressBar() {
	s.chrome.focus = "address bar"
	s.chrome.addressBar = ""
}

func (s *Shell) HandleQuit() {
	s.browser.Shutdown()
	s.window.Destroy()
}
