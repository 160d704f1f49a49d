//go:build js && wasm

package jscanvas

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"syscall/js"

	"github.com/susji/mathcanvas/surface"
)

// Surface draws onto a 2d canvas context. Text placed outside of the
// canvas goes into absolutely positioned elements of an overlay container.
type Surface struct {
	parent  js.Value
	el      js.Value
	ctx     js.Value
	overlay js.Value
}

// New creates a canvas element with the given id, appends it to parent and
// sizes it to w x h.
func New(parent js.Value, id string, w, h int) (*Surface, error) {
	if parent.IsUndefined() || parent.IsNull() {
		return nil, errors.New("a parent element is required")
	}
	doc := js.Global().Get("document")
	el := doc.Call("createElement", "canvas")
	el.Set("id", id)
	el.Get("style").Set("position", "absolute")
	parent.Call("appendChild", el)

	overlay := doc.Call("createElement", "div")
	overlay.Set("id", "container-for_"+id)
	st := overlay.Get("style")
	st.Set("position", "absolute")
	st.Set("top", "0")
	st.Set("left", "0")
	doc.Get("body").Call("appendChild", overlay)

	s := &Surface{
		parent:  parent,
		el:      el,
		ctx:     el.Call("getContext", "2d"),
		overlay: overlay,
	}
	if err := s.Resize(w, h); err != nil {
		return nil, err
	}
	return s, nil
}

// Element returns the underlying <canvas>.
func (s *Surface) Element() js.Value { return s.el }

func (s *Surface) Size() (int, int) {
	return s.el.Get("width").Int(), s.el.Get("height").Int()
}

func (s *Surface) Resize(w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("bad canvas size %dx%d", w, h)
	}
	s.el.Set("width", w)
	s.el.Set("height", h)
	return nil
}

func (s *Surface) ParentSize() (int, int, bool) {
	w := s.parent.Get("clientWidth")
	h := s.parent.Get("clientHeight")
	if w.Type() != js.TypeNumber || h.Type() != js.TypeNumber {
		return 0, 0, false
	}
	return w.Int(), h.Int(), w.Int() > 0 && h.Int() > 0
}

func (s *Surface) Clear() {
	w, h := s.Size()
	s.ctx.Call("clearRect", 0, 0, w, h)
	for {
		child := s.overlay.Get("firstChild")
		if child.IsNull() || child.IsUndefined() {
			break
		}
		s.overlay.Call("removeChild", child)
	}
}

func (s *Surface) DrawLine(x0, y0, x1, y1 float64, c color.Color, width float64) {
	s.ctx.Call("beginPath")
	s.ctx.Set("lineWidth", width)
	s.ctx.Set("strokeStyle", surface.CSS(c))
	s.ctx.Call("moveTo", x0, y0)
	s.ctx.Call("lineTo", x1, y1)
	s.ctx.Call("stroke")
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.ctx.Set("fillStyle", surface.CSS(c))
	s.ctx.Call("fillRect", x, y, w, h)
}

func (s *Surface) DrawArc(x, y, r, start, end float64, c color.Color, ccw, fill bool) {
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", x, y, r, start, end, ccw)
	if fill {
		s.ctx.Set("fillStyle", surface.CSS(c))
		s.ctx.Call("fill")
		return
	}
	s.ctx.Set("strokeStyle", surface.CSS(c))
	s.ctx.Call("stroke")
}

func baseline(b surface.Baseline) string {
	switch b {
	case surface.BaselineTop:
		return "top"
	case surface.BaselineMiddle:
		return "middle"
	}
	return "bottom"
}

func (s *Surface) DrawText(txt string, x, y float64, st surface.TextStyle) {
	fnt := st.Font
	if fnt.Size <= 0 {
		fnt = surface.DefaultFont
	}
	s.ctx.Set("textAlign", st.Align.String())
	s.ctx.Set("textBaseline", baseline(st.Baseline))
	s.ctx.Set("font", fnt.String())
	s.ctx.Set("fillStyle", surface.CSS(st.Color))
	s.ctx.Call("fillText", txt, x, y)
}

// OverlayText places txt in an absolutely positioned element relative to
// the parent's bounding box, translated according to the alignment.
func (s *Surface) OverlayText(txt string, x, y float64, st surface.TextStyle) bool {
	doc := js.Global().Get("document")
	div := doc.Call("createElement", "div")
	div.Set("innerText", txt)

	br := s.parent.Call("getBoundingClientRect")
	style := div.Get("style")
	style.Set("color", surface.CSS(st.Color))
	style.Set("fontFamily", st.Font.Family)
	if st.Font.Size > 0 {
		style.Set("fontSize", strconv.FormatFloat(st.Font.Size, 'f', -1, 64)+"px")
	}
	style.Set("position", "absolute")
	style.Set("top", strconv.FormatFloat(y+br.Get("y").Float(), 'f', -1, 64)+"px")
	style.Set("left", strconv.FormatFloat(x+br.Get("x").Float(), 'f', -1, 64)+"px")

	tx, ty := "0", "0"
	switch st.Align {
	case surface.AlignRight:
		tx = "-100%"
	case surface.AlignCenter:
		tx = "-50%"
	}
	switch st.Baseline {
	case surface.BaselineMiddle:
		ty = "-50%"
	case surface.BaselineBottom:
		ty = "-100%"
	}
	style.Set("transform", "translate("+tx+","+ty+")")
	s.overlay.Call("appendChild", div)
	return true
}

var (
	_ surface.Surface     = (*Surface)(nil)
	_ surface.Overlay     = (*Surface)(nil)
	_ surface.Resizer     = (*Surface)(nil)
	_ surface.ParentSizer = (*Surface)(nil)
)
