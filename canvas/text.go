package canvas

import (
	"image/color"

	"github.com/susji/mathcanvas/surface"
)

const (
	// Distance kept from the surface border by clamped text.
	boundMargin = 10
	// Distance kept from the bottom border, which leaves room for
	// descenders.
	boundBottomMargin = 5
)

// TextOptions style FillText. The zero value draws black bottom-left
// aligned text in the default font without any bound checks.
type TextOptions struct {
	Align    surface.Align
	Baseline surface.Baseline
	Font     surface.Font
	Color    color.Color

	// StayInBound moves text anchored outside of the surface back inside
	// and paints it with InBoundColor.
	StayInBound  bool
	InBoundColor color.Color
	// Outside puts out-of-bound text next to the border, outside of the
	// surface, when the surface supports overlays.
	Outside bool
}

var DefaultInBoundColor = color.Color(color.NRGBA{R: 128, G: 128, B: 128, A: 255})

func (o TextOptions) style() surface.TextStyle {
	st := surface.TextStyle{
		Align:    o.Align,
		Baseline: o.Baseline,
		Font:     o.Font,
		Color:    o.Color,
	}
	if st.Font.Size <= 0 {
		st.Font = surface.DefaultFont
	}
	if st.Color == nil {
		st.Color = color.Black
	}
	return st
}

// FillText draws txt anchored at a plane point.
func (c *Canvas) FillText(txt string, x, y float64, opts TextOptions) error {
	px, py, err := c.ToPixel(x, y)
	if err != nil {
		return err
	}
	st := opts.style()
	if !opts.StayInBound {
		c.surface.DrawText(txt, px, py, st)
		return nil
	}

	sw, sh := c.surface.Size()
	w, h := float64(sw), float64(sh)
	outOfBound := px < boundMargin || px > w || py < boundMargin || py > h
	if outOfBound {
		st.Color = opts.InBoundColor
		if st.Color == nil {
			st.Color = DefaultInBoundColor
		}
		if opts.Outside {
			if ov, ok := c.surface.(surface.Overlay); ok {
				ox, oy, ost := outsidePlacement(px, py, w, h, st)
				if ov.OverlayText(txt, ox, oy, ost) {
					return nil
				}
			}
		}
	}

	if px < boundMargin {
		px = boundMargin
		st.Align = surface.AlignLeft
	}
	if px > w {
		px = w - boundMargin
		st.Align = surface.AlignRight
	}
	if py < boundMargin {
		py = boundMargin
		st.Baseline = surface.BaselineTop
	}
	if py > h-boundBottomMargin {
		py = h - boundBottomMargin
		st.Baseline = surface.BaselineBottom
	}
	c.surface.DrawText(txt, px, py, st)
	return nil
}

// outsidePlacement moves an out-of-bound anchor just past the nearest
// border and aligns the text away from the surface.
func outsidePlacement(px, py, w, h float64, st surface.TextStyle) (float64, float64, surface.TextStyle) {
	if px < boundMargin {
		px = -boundMargin
		st.Align = surface.AlignRight
	}
	if px > w {
		px = w + boundMargin
		st.Align = surface.AlignLeft
	}
	if py < 0 {
		py = -boundMargin
		st.Baseline = surface.BaselineBottom
	}
	if py > h {
		py = h + boundBottomMargin
		st.Baseline = surface.BaselineTop
	}
	return px, py, st
}
