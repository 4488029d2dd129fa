//go:build cgo || js

package hal

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunWindow opens a resizable window (a canvas under js/wasm), presents the
// framebuffer once per display refresh and forwards keyboard and pointer
// input. It blocks until the window closes or the app returns ErrQuit.
func RunWindow(cfg WindowConfig, newApp NewApp) error {
	h := New(HostConfig{
		Width:         cfg.Width,
		Height:        cfg.Height,
		MaxPixelRatio: cfg.MaxPixelRatio,
		Log:           cfg.Log,
	})
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, maxRatio: cfg.MaxPixelRatio}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h        *Host
	img      *image.RGBA
	fbImg    *ebiten.Image
	step     func() error
	maxRatio float64
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.ptr.poll(g.h.fb.PixelRatio())
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.img = g.h.fb.snapshot(g.img)
	b := g.img.Bounds()
	if g.fbImg == nil || g.fbImg.Bounds() != b {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)

	if text := g.h.Overlay(); text != "" {
		ebitenutil.DebugPrint(screen, text)
	}
}

// Layout keeps the framebuffer at the window's logical size and renders at
// the device scale factor, capped at maxRatio.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ClampPixelRatio(ebiten.Monitor().DeviceScaleFactor(), g.maxRatio)
	g.h.fb.Resize(outsideWidth, outsideHeight, ratio)
	return PhysicalSize(outsideWidth, outsideHeight, ratio)
}
