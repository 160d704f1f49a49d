package grid

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
)

// LineStyle styles one family of lines.
type LineStyle struct {
	Displayed bool
	Color     color.Color
	Width     float64
}

// Lines holds a toggle for a whole family of lines together with the
// styles of its X-direction lines, which are vertical and placed along x,
// and its Y-direction lines, which are horizontal and placed along y.
type Lines struct {
	Displayed bool
	X, Y      LineStyle
}

type Options struct {
	// Square rescales the default plane so that both axes share one unit
	// length.
	Square       bool
	Axis         Lines
	GridLines    Lines
	SubGridLines Lines
	PxStep       plane.PxStep
	Font         surface.Font
	LabelColor   color.Color
	// LabelsOutside puts labels of off-screen axes outside of the surface
	// when it supports overlays.
	LabelsOutside bool
}

func lines(c color.Color, width float64) Lines {
	return Lines{
		Displayed: true,
		X:         LineStyle{Displayed: true, Color: c, Width: width},
		Y:         LineStyle{Displayed: true, Color: c, Width: width},
	}
}

func DefaultOptions() Options {
	return Options{
		Square:       true,
		Axis:         lines(surface.MustParseColor("#222"), 1),
		GridLines:    lines(surface.MustParseColor("grey"), 0.5),
		SubGridLines: lines(surface.MustParseColor("lightgrey"), 0.5),
		PxStep:       plane.DefaultPxStep,
		Font:         surface.DefaultFont,
		LabelColor:   color.Black,
	}
}

var tokenAliases = map[string]string{
	"verti":     "x",
	"vertical":  "x",
	"horiz":     "y",
	"linecolor": "color",
	"linewidth": "width",
}

// NormalizeKey turns keys like "gridLines.verti.lineColor" into their
// canonical form "gridlines_x_color".
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.NewReplacer(".", "_", "-", "_").Replace(key)
	switch key {
	case "fontoptions_fontstyle", "fontstyle":
		return "font"
	}
	tokens := strings.Split(key, "_")
	out := tokens[:0]
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if a, ok := tokenAliases[t]; ok {
			t = a
		}
		out = append(out, t)
	}
	key = strings.Join(out, "_")
	key = strings.Replace(key, "sub_grid_lines", "subgridlines", 1)
	key = strings.Replace(key, "grid_lines", "gridlines", 1)
	key = strings.Replace(key, "px_step", "pxstep", 1)
	return key
}

func (o *Options) family(name string) *Lines {
	switch name {
	case "axis":
		return &o.Axis
	case "gridlines":
		return &o.GridLines
	case "subgridlines":
		return &o.SubGridLines
	}
	return nil
}

// Set merges one key into the options. Unknown keys are logged and
// ignored, malformed values are reported.
func (o *Options) Set(key, value string) error {
	norm := NormalizeKey(key)
	value = strings.TrimSpace(value)
	parts := strings.Split(norm, "_")

	switch norm {
	case "square":
		return setBool(&o.Square, key, value)
	case "labels_outside":
		return setBool(&o.LabelsOutside, key, value)
	case "label_color", "labels_color":
		return setColor(&o.LabelColor, key, value)
	case "font":
		f, err := surface.ParseFont(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.Font = f
		return nil
	case "pxstep_min", "pxstep_max":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("%s: %q is not a positive number", key, value)
		}
		if parts[1] == "min" {
			o.PxStep.Min = v
		} else {
			o.PxStep.Max = v
		}
		return nil
	}

	if fam := o.family(parts[0]); fam != nil {
		switch {
		case len(parts) == 2 && parts[1] == "displayed":
			return setBool(&fam.Displayed, key, value)
		case len(parts) == 3 && (parts[1] == "x" || parts[1] == "y"):
			ls := &fam.X
			if parts[1] == "y" {
				ls = &fam.Y
			}
			switch parts[2] {
			case "displayed":
				return setBool(&ls.Displayed, key, value)
			case "color":
				return setColor(&ls.Color, key, value)
			case "width":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil || v <= 0 {
					return fmt.Errorf("%s: %q is not a positive number", key, value)
				}
				ls.Width = v
				return nil
			}
		}
	}
	log.Printf("ignoring unknown grid option %q\n", key)
	return nil
}

// Validate checks the options for values which cannot be drawn.
func (o Options) Validate() error {
	if err := o.PxStep.Validate(); err != nil {
		return err
	}
	if o.Font.Size <= 0 {
		return fmt.Errorf("%w: font size %v", plane.ErrInvalidArgument, o.Font.Size)
	}
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", key, value)
	}
	*dst = b
	return nil
}

func setColor(dst *color.Color, key, value string) error {
	c, err := surface.ParseColor(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = c
	return nil
}
