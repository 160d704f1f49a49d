//go:build !noviewer

package main

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/susji/mathcanvas/surface/vgsurface"
)

// viewGame shows a scene in a window. With fit_parent the window acts as
// the parent container and the canvas follows its size.
type viewGame struct {
	sc         *scene
	fit_parent bool

	want_w, want_h int
	img            *ebiten.Image
	dirty          bool
}

func (g *viewGame) Update() error {
	if !g.fit_parent || g.want_w <= 0 || g.want_h <= 0 {
		return nil
	}
	if w, h := g.sc.canvas.Size(); w == g.want_w && h == g.want_h {
		return nil
	}
	if err := g.sc.resize(g.want_w, g.want_h); err != nil {
		log.Println("view: resize failed: ", err)
		return nil
	}
	g.dirty = true
	return nil
}

func (g *viewGame) Draw(screen *ebiten.Image) {
	if g.img == nil || g.dirty {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImageFromImage(g.sc.surface.Image())
		g.dirty = false
	}
	screen.DrawImage(g.img, nil)
}

func (g *viewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.fit_parent {
		g.want_w, g.want_h = outsideWidth, outsideHeight
		return outsideWidth, outsideHeight
	}
	return g.sc.canvas.Size()
}

func view(p *params_view) error {
	cfg := must_load_config(p.config_path)
	if p.journal_path != "" {
		cfg.journal.path = p.journal_path
	}
	cfg.canvas.format = vgsurface.FormatPNG

	var j *journal
	if cfg.journal.path != "" {
		var err error
		j, err = journal_open(context.Background(), cfg.journal)
		if err != nil {
			return err
		}
		defer j.close()
	}

	sc, err := scene_build(cfg, journal_notifier(j))
	if err != nil {
		return err
	}
	g := &viewGame{sc: sc, fit_parent: cfg.canvas.fit_parent}

	w, h := sc.canvas.Size()
	ebiten.SetWindowTitle("mathcanvas #" + sc.canvas.ID())
	ebiten.SetWindowSize(w, h)
	if g.fit_parent {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
