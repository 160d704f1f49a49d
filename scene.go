package main

import (
	"fmt"
	"io"
	"log"

	"github.com/susji/mathcanvas/canvas"
	"github.com/susji/mathcanvas/graph"
	"github.com/susji/mathcanvas/grid"
	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface/vgsurface"
)

// scene is one grid and at most one plotted series sharing a canvas.
type scene struct {
	surface *vgsurface.Surface
	canvas  *canvas.Canvas
	grid    *grid.Grid
	graph   *graph.Graph
}

func scene_values(pc *config_plot) []graph.Sample {
	if len(pc.samples) > 0 {
		return pc.samples
	}
	if f, ok := demos[pc.demo]; ok {
		return f(DEFAULT_DEMO_SAMPLES)
	}
	return nil
}

func scene_build(cfg *config_all, notifier plane.Notifier) (*scene, error) {
	cc := cfg.canvas
	s, err := vgsurface.New(cc.width, cc.height, vgsurface.Options{
		Format:     cc.format,
		Background: cc.background,
		Margin:     cc.margin,
	})
	if err != nil {
		return nil, err
	}
	c, err := canvas.New(s, canvas.NewID(), canvas.Options{
		FitParent: cc.fit_parent,
		Width:     cc.width,
		Height:    cc.height,
	})
	if err != nil {
		return nil, err
	}
	c.Manager().SetNotifier(notifier)

	g, err := grid.New(c, cfg.grid)
	if err != nil {
		return nil, fmt.Errorf("cannot create grid: %w", err)
	}
	sc := &scene{surface: s, canvas: c, grid: g}

	pc := cfg.plot
	if pc.plane != nil {
		if err := c.SetPlane(*pc.plane); err != nil {
			return nil, err
		}
	}
	vals := scene_values(pc)
	if len(vals) == 0 {
		return sc, nil
	}

	sc.graph = graph.New(c)
	sc.graph.SetStyle(pc.style)
	sc.graph.SetColor(pc.color)
	if err := sc.graph.SetDotRadius(pc.dot_radius); err != nil {
		return nil, err
	}
	if err := sc.graph.SetValues(vals); err != nil {
		return nil, err
	}
	autofit := pc.autofit && pc.plane == nil
	if err := sc.graph.Plot(autofit); err != nil {
		return nil, fmt.Errorf("cannot plot %d samples: %w", len(vals), err)
	}
	log.Printf("plotted %d samples as %s on #%s\n", len(vals), pc.style, c.ID())
	return sc, nil
}

func (sc *scene) resize(w, h int) error {
	return sc.canvas.SetSize(w, h)
}

func (sc *scene) write(w io.Writer) error {
	_, err := sc.surface.WriteTo(w)
	return err
}
