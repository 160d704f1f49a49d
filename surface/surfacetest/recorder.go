// Package surfacetest provides a Surface which records every call so tests
// can assert on what was drawn and in which order.
package surfacetest

import (
	"fmt"
	"image/color"

	"github.com/susji/mathcanvas/surface"
)

type Kind string

const (
	KindClear   Kind = "clear"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindArc     Kind = "arc"
	KindText    Kind = "text"
	KindOverlay Kind = "overlay"
)

// Op is one recorded drawing call. Coordinates hold x0,y0,x1,y1 for lines,
// x,y,w,h for rectangles and x,y,r,start,end for arcs.
type Op struct {
	Kind   Kind
	Coords []float64
	Color  color.Color
	Width  float64
	Text   string
	Style  surface.TextStyle
	CCW    bool
	Fill   bool
}

func (o Op) String() string {
	if o.Text != "" {
		return fmt.Sprintf("%s %q %v", o.Kind, o.Text, o.Coords)
	}
	return fmt.Sprintf("%s %v", o.Kind, o.Coords)
}

// Recorder implements surface.Surface, surface.Resizer, surface.ParentSizer
// and surface.Overlay. Overlay and ParentSizer behaviour is switched on
// through its fields.
type Recorder struct {
	W, H int
	Ops  []Op

	// OverlayOK makes OverlayText accept text.
	OverlayOK bool
	// ParentW and ParentH are reported by ParentSize when non-zero.
	ParentW, ParentH int
}

func New(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: KindClear})
}

func (r *Recorder) DrawLine(x0, y0, x1, y1 float64, c color.Color, width float64) {
	r.Ops = append(r.Ops, Op{
		Kind: KindLine, Coords: []float64{x0, y0, x1, y1}, Color: c, Width: width,
	})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindRect, Coords: []float64{x, y, w, h}, Color: c})
}

func (r *Recorder) DrawArc(x, y, rad, start, end float64, c color.Color, ccw, fill bool) {
	r.Ops = append(r.Ops, Op{
		Kind: KindArc, Coords: []float64{x, y, rad, start, end}, Color: c, CCW: ccw, Fill: fill,
	})
}

func (r *Recorder) DrawText(txt string, x, y float64, st surface.TextStyle) {
	r.Ops = append(r.Ops, Op{
		Kind: KindText, Coords: []float64{x, y}, Text: txt, Style: st, Color: st.Color,
	})
}

func (r *Recorder) OverlayText(txt string, x, y float64, st surface.TextStyle) bool {
	if !r.OverlayOK {
		return false
	}
	r.Ops = append(r.Ops, Op{
		Kind: KindOverlay, Coords: []float64{x, y}, Text: txt, Style: st, Color: st.Color,
	})
	return true
}

func (r *Recorder) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("bad size %dx%d", w, h)
	}
	r.W, r.H = w, h
	return nil
}

func (r *Recorder) ParentSize() (int, int, bool) {
	if r.ParentW <= 0 || r.ParentH <= 0 {
		return 0, 0, false
	}
	return r.ParentW, r.ParentH, true
}

// Reset forgets all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Filter returns the recorded operations of the given kinds in order.
func (r *Recorder) Filter(kinds ...Kind) []Op {
	var ret []Op
	for _, o := range r.Ops {
		for _, k := range kinds {
			if o.Kind == k {
				ret = append(ret, o)
				break
			}
		}
	}
	return ret
}

// Texts returns the strings drawn with DrawText and OverlayText in order.
func (r *Recorder) Texts() []string {
	var ret []string
	for _, o := range r.Filter(KindText, KindOverlay) {
		ret = append(ret, o.Text)
	}
	return ret
}

var (
	_ surface.Surface     = (*Recorder)(nil)
	_ surface.Overlay     = (*Recorder)(nil)
	_ surface.Resizer     = (*Recorder)(nil)
	_ surface.ParentSizer = (*Recorder)(nil)
)
