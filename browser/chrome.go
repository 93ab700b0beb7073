package browser

import (
	"image/color"

	"github.com/fogleman/gg"
	fnt "golang.org/x/image/font"

	"sentinel/font"
	"sentinel/rect"
)

// Chrome is the strip above the page: tab bar, navigation buttons, and the
// address bar.
type Chrome struct {
	shell      *Shell
	face       fnt.Face
	fontHeight float64
	padding    float64

	tabbarTop    float64
	tabbarBottom float64
	newtabRect   *rect.Rect

	urlbarTop    float64
	urlbarBottom float64
	backRect     *rect.Rect
	forwardRect  *rect.Rect
	addressRect  *rect.Rect

	bottom     float64
	focus      string
	addressBar string
}

func NewChrome(shell *Shell) (*Chrome, error) {
	face, err := font.Get(16, "normal", "normal")
	if err != nil {
		return nil, err
	}
	c := &Chrome{shell: shell, face: face}
	c.fontHeight = font.Linespace(face)
	c.padding = 5

	c.tabbarTop = 0
	c.tabbarBottom = c.fontHeight + 2*c.padding
	plusWidth := font.Measure(face, "+") + 2*c.padding
	c.newtabRect = rect.NewRect(c.padding, c.padding, c.padding+plusWidth, c.padding+c.fontHeight)

	c.urlbarTop = c.tabbarBottom
	c.urlbarBottom = c.urlbarTop + c.fontHeight + 2*c.padding

	backWidth := font.Measure(face, "<") + 2*c.padding
	c.backRect = rect.NewRect(
		c.padding,
		c.urlbarTop+c.padding,
		c.padding+backWidth,
		c.urlbarBottom-c.padding,
	)
	forwardWidth := font.Measure(face, ">") + 2*c.padding
	c.forwardRect = rect.NewRect(
		c.backRect.Right+c.padding,
		c.urlbarTop+c.padding,
		c.backRect.Right+c.padding+forwardWidth,
		c.urlbarBottom-c.padding,
	)
	c.addressRect = rect.NewRect(
		c.forwardRect.Right+c.padding,
		c.urlbarTop+c.padding,
		float64(shell.width)-c.padding,
		c.urlbarBottom-c.padding,
	)

	c.bottom = c.urlbarBottom
	return c, nil
}

func (c *Chrome) tabRect(i int) *rect.Rect {
	tabsStart := c.newtabRect.Right + c.padding
	tabWidth := font.Measure(c.face, "Tab XXXXXXXX") + 2*c.padding
	return rect.NewRect(
		tabsStart+tabWidth*float64(i), c.tabbarTop,
		tabsStart+tabWidth*float64(i+1), c.tabbarBottom,
	)
}

func (c *Chrome) paint(dc *gg.Context) {
	dc.SetFontFace(c.face)
	width := float64(c.shell.width)

	dc.SetColor(color.White)
	dc.DrawRectangle(0, 0, width, c.bottom)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.DrawLine(0, c.bottom, width, c.bottom)
	dc.Stroke()

	c.outline(dc, c.newtabRect)
	c.label(dc, c.newtabRect, "+")

	for i, tab := range c.shell.browser.Tabs() {
		bounds := c.tabRect(i)
		dc.DrawLine(bounds.Left, 0, bounds.Left, bounds.Bottom)
		dc.DrawLine(bounds.Right, 0, bounds.Right, bounds.Bottom)
		dc.Stroke()
		title := tab.Title()
		if title == "" {
			title = "New Tab"
		}
		c.label(dc, bounds, clip(c.face, title, bounds.Width()-2*c.padding))
		if tab == c.shell.browser.ActiveTab() {
			dc.DrawLine(0, bounds.Bottom, bounds.Left, bounds.Bottom)
			dc.DrawLine(bounds.Right, bounds.Bottom, width, bounds.Bottom)
			dc.Stroke()
		}
	}

	c.outline(dc, c.backRect)
	c.label(dc, c.backRect, "<")
	c.outline(dc, c.forwardRect)
	c.label(dc, c.forwardRect, ">")

	c.outline(dc, c.addressRect)
	if c.focus == "address bar" {
		c.label(dc, c.addressRect, c.addressBar)
		cursorX := c.addressRect.Left + c.padding + font.Measure(c.face, c.addressBar)
		dc.SetColor(color.RGBA{R: 0xcc, A: 0xff})
		dc.DrawLine(cursorX, c.addressRect.Top, cursorX, c.addressRect.Bottom)
		dc.Stroke()
		dc.SetColor(color.Black)
	} else if tab := c.shell.browser.ActiveTab(); tab != nil {
		c.label(dc, c.addressRect, clip(c.face, tab.Location(), c.addressRect.Width()-2*c.padding))
	}
}

func (c *Chrome) outline(dc *gg.Context, r *rect.Rect) {
	dc.SetColor(color.Black)
	dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	dc.Stroke()
}

func (c *Chrome) label(dc *gg.Context, r *rect.Rect, text string) {
	dc.SetColor(color.Black)
	dc.DrawString(text, r.Left+c.padding, r.Top+font.Ascent(c.face))
}

func (c *Chrome) click(x, y float64) {
	c.focus = ""
	switch {
	case c.newtabRect.ContainsPoint(x, y):
		c.shell.browser.NewTab()
	case c.backRect.ContainsPoint(x, y):
		if tab := c.shell.browser.ActiveTab(); tab != nil {
			tab.GoBack()
		}
	case c.forwardRect.ContainsPoint(x, y):
		if tab := c.shell.browser.ActiveTab(); tab != nil {
			tab.GoForward()
		}
	case c.addressRect.ContainsPoint(x, y):
		c.focus = "address bar"
		c.addressBar = ""
	default:
		for i, tab := range c.shell.browser.Tabs() {
			if c.tabRect(i).ContainsPoint(x, y) {
				c.shell.browser.SetActiveTab(tab)
				return
			}
		}
	}
}

func (c *Chrome) keypress(char rune) bool {
	if c.focus == "address bar" {
		c.addressBar += string(char)
		return true
	}
	return false
}

func (c *Chrome) backspace() bool {
	if c.focus == "address bar" && c.addressBar != "" {
		runes := []rune(c.addressBar)
		c.addressBar = string(runes[:len(runes)-1])
		return true
	}
	return false
}

func (c *Chrome) enter() bool {
	if c.focus == "address bar" {
		if tab := c.shell.browser.ActiveTab(); tab != nil {
			tab.Navigate(c.addressBar)
		}
		c.focus = ""
		return true
	}
	return false
}

func (c *Chrome) blur() {
	c.focus = ""
}

// clip shortens text with an ellipsis so it fits the given width.
func clip(face fnt.Face, text string, width float64) string {
	if font.Measure(face, text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && font.Measure(face, string(runes)+"…") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
