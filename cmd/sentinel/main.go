package main

import (
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"sentinel/browser"
	"sentinel/config"
	"sentinel/logging"
)

func main() {
	if err := sdl.Init(sdl.INIT_EVENTS); err != nil {
		panic("could not init sdl: " + err.Error())
	}

	cfg := config.LoadOrDefault()
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	b := browser.NewBrowser(cfg, logger)
	shell, err := browser.NewShell(b, cfg, logger)
	if err != nil {
		panic("could not create window: " + err.Error())
	}

	if len(os.Args) > 1 {
		b.OpenTab(os.Args[1])
	} else {
		b.NewTab()
	}

	shell.Draw()
	mainloop(b, shell)
}

func mainloop(b *browser.Browser, shell *browser.Shell) {
	ctrlDown := false
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				shell.HandleQuit()
				sdl.Quit()
				os.Exit(0)
			case *sdl.MouseButtonEvent:
				if e.State == sdl.RELEASED {
					continue
				}
				shell.HandleClick(e)
			case *sdl.MouseWheelEvent:
				if e.Y < 0 {
					shell.HandleDown()
				} else {
					shell.HandleUp()
				}
			case *sdl.KeyboardEvent:
				if e.State == sdl.RELEASED {
					if e.Keysym.Sym == sdl.K_RCTRL || e.Keysym.Sym == sdl.K_LCTRL {
						ctrlDown = false
					}
				} else if e.State == sdl.PRESSED {
					if ctrlDown {
						switch e.Keysym.Sym {
						case sdl.K_l:
							shell.FocusAddressBar()
						case sdl.K_LEFT:
							if tab := b.ActiveTab(); tab != nil {
								tab.GoBack()
							}
						case sdl.K_RIGHT:
							if tab := b.ActiveTab(); tab != nil {
								tab.GoForward()
							}
						case sdl.K_r:
							if tab := b.ActiveTab(); tab != nil {
								tab.Reload()
							}
						case sdl.K_t:
							b.NewTab()
						case sdl.K_TAB:
							b.CycleTabs()
						case sdl.K_q:
							shell.HandleQuit()
							sdl.Quit()
							os.Exit(0)
						}
					} else {
						switch e.Keysym.Sym {
						case sdl.K_RCTRL, sdl.K_LCTRL:
							ctrlDown = true
						case sdl.K_RETURN:
							shell.HandleEnter()
						case sdl.K_BACKSPACE:
							shell.HandleBackspace()
						case sdl.K_UP:
							shell.HandleUp()
						case sdl.K_DOWN:
							shell.HandleDown()
						}
					}
				}
			case *sdl.TextInputEvent:
				shell.HandleKey(e)
			}
		}
		shell.Draw()
		sdl.Delay(16)
	}
}
