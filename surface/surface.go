// Package surface defines the pixel-space drawing capability that canvases
// render onto, together with the text and colour vocabulary shared by all
// backends.
package surface

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Surface draws primitives in pixel coordinates with the origin at the top
// left corner and y growing downwards.
type Surface interface {
	Size() (width, height int)
	Clear()
	DrawLine(x0, y0, x1, y1 float64, c color.Color, width float64)
	FillRect(x, y, w, h float64, c color.Color)
	// DrawArc draws an arc of radius r around (x, y) from angle start to end
	// in radians, clockwise unless ccw is set. Angles grow clockwise on
	// screen, as on an HTML canvas.
	DrawArc(x, y, r, start, end float64, c color.Color, ccw, fill bool)
	DrawText(txt string, x, y float64, st TextStyle)
}

// Overlay is implemented by surfaces which can put text outside of their
// visible drawing area, such as a margin around a raster image or an HTML
// element stacked on a browser canvas. OverlayText reports false when the
// text could not be placed.
type Overlay interface {
	OverlayText(txt string, x, y float64, st TextStyle) bool
}

// Resizer is implemented by surfaces whose pixel size can change.
type Resizer interface {
	Resize(width, height int) error
}

// ParentSizer is implemented by surfaces living inside a container which
// has a size of its own, like a DOM element or a desktop window.
type ParentSizer interface {
	ParentSize() (width, height int, ok bool)
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start", "":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("unknown text align %q", s)
}

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

type Baseline int

const (
	BaselineBottom Baseline = iota
	BaselineMiddle
	BaselineTop
)

func ParseBaseline(s string) (Baseline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom", "alphabetic", "ideographic", "":
		return BaselineBottom, nil
	case "middle":
		return BaselineMiddle, nil
	case "top", "hanging":
		return BaselineTop, nil
	}
	return BaselineBottom, fmt.Errorf("unknown text baseline %q", s)
}

func (b Baseline) String() string {
	switch b {
	case BaselineMiddle:
		return "middle"
	case BaselineTop:
		return "top"
	}
	return "bottom"
}

// Font is a CSS-like font description such as "15px Arial".
type Font struct {
	Size   float64
	Family string
}

var DefaultFont = Font{Size: 15, Family: "Arial"}

// ParseFont accepts "<size>px <family>" with an optional leading style
// keyword ("bold", "italic") which is ignored.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	for len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "bold", "italic", "normal", "oblique":
			fields = fields[1:]
			continue
		}
		break
	}
	if len(fields) < 2 {
		return Font{}, fmt.Errorf("font %q needs a size and a family", s)
	}
	size, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(fields[0]), "px"), 64)
	if err != nil || size <= 0 {
		return Font{}, fmt.Errorf("font %q has a bad size", s)
	}
	family := strings.Trim(strings.Join(fields[1:], " "), `"'`)
	return Font{Size: size, Family: family}, nil
}

func (f Font) String() string {
	return strconv.FormatFloat(f.Size, 'f', -1, 64) + "px " + f.Family
}

// TextStyle describes how DrawText places and paints a string relative to
// its anchor point.
type TextStyle struct {
	Align    Align
	Baseline Baseline
	Font     Font
	Color    color.Color
}
