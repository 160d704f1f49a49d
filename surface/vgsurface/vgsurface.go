// Package vgsurface renders canvases through gonum/plot's vg backends into
// PNG, JPEG, TIFF, SVG or PDF documents.
package vgsurface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/susji/mathcanvas/surface"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpg"
	FormatTIFF = "tiff"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
)

var Formats = []string{FormatPNG, FormatJPEG, FormatTIFF, FormatSVG, FormatPDF}

// ErrUnsupportedFormat is returned for output formats without a backend.
var ErrUnsupportedFormat = errors.New("unsupported format")

// NormalizeFormat maps aliases like "jpeg" and "tif" to the canonical
// format names.
func NormalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimPrefix(format, ".")); f {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatJPEG, "jpeg":
		return FormatJPEG, nil
	case FormatTIFF, "tif":
		return FormatTIFF, nil
	case FormatSVG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ContentType returns the MIME type of an encoded format.
func ContentType(format string) string {
	switch format {
	case FormatJPEG:
		return "image/jpeg"
	case FormatTIFF:
		return "image/tiff"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	}
	return "image/png"
}

type Options struct {
	// Format is one of Formats. Empty means PNG.
	Format string
	// Background fills the whole document on Clear. Nil means white.
	Background color.Color
	// Margin is extra room around the drawing area where overlay text
	// can be placed.
	Margin int
}

var fonts = font.NewCache(liberation.Collection())

// Surface is a surface.Surface drawing into a vg canvas. One surface pixel
// is one vg point, and raster formats are rendered at 72 DPI so that the
// two coincide.
type Surface struct {
	w, h   int
	format string
	bg     color.Color
	margin int

	c   vg.CanvasWriterTo
	img *vgimg.Canvas
	dc  draw.Canvas
}

func New(w, h int, opts Options) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bad surface size %dx%d", w, h)
	}
	if opts.Margin < 0 {
		return nil, fmt.Errorf("bad surface margin %d", opts.Margin)
	}
	format, err := NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	s := &Surface{w: w, h: h, format: format, bg: bg, margin: opts.Margin}
	s.Clear()
	return s, nil
}

func (s *Surface) Size() (int, int) { return s.w, s.h }
func (s *Surface) Format() string   { return s.format }

func (s *Surface) totalSize() (vg.Length, vg.Length) {
	return vg.Length(s.w + 2*s.margin), vg.Length(s.h + 2*s.margin)
}

// Clear starts a fresh document filled with the background colour.
func (s *Surface) Clear() {
	tw, th := s.totalSize()
	s.img = nil
	switch s.format {
	case FormatSVG:
		s.c = vgsvg.New(tw, th)
	case FormatPDF:
		s.c = vgpdf.New(tw, th)
	default:
		s.img = vgimg.NewWith(
			vgimg.UseWH(tw, th),
			vgimg.UseDPI(72),
			vgimg.UseBackgroundColor(s.bg))
		switch s.format {
		case FormatJPEG:
			s.c = vgimg.JpegCanvas{Canvas: s.img}
		case FormatTIFF:
			s.c = vgimg.TiffCanvas{Canvas: s.img}
		default:
			s.c = vgimg.PngCanvas{Canvas: s.img}
		}
	}
	s.dc = draw.New(s.c)
	if s.img == nil {
		s.dc.FillPolygon(s.bg, []vg.Point{
			{X: 0, Y: 0}, {X: tw, Y: 0}, {X: tw, Y: th}, {X: 0, Y: th},
		})
	}
}

// Resize changes the drawing area and clears it.
func (s *Surface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("bad surface size %dx%d", w, h)
	}
	s.w, s.h = w, h
	s.Clear()
	return nil
}

// pt converts surface pixels into vg coordinates, which grow upwards and
// include the margin.
func (s *Surface) pt(x, y float64) vg.Point {
	_, th := s.totalSize()
	return vg.Point{
		X: vg.Length(float64(s.margin) + x),
		Y: th - vg.Length(float64(s.margin)+y),
	}
}

func (s *Surface) DrawLine(x0, y0, x1, y1 float64, c color.Color, width float64) {
	a, b := s.pt(x0, y0), s.pt(x1, y1)
	s.dc.StrokeLine2(draw.LineStyle{Color: c, Width: vg.Length(width)}, a.X, a.Y, b.X, b.Y)
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	s.dc.FillPolygon(c, []vg.Point{
		s.pt(x, y), s.pt(x+w, y), s.pt(x+w, y+h), s.pt(x, y+h),
	})
}

// arcSweep converts screen angles, which grow clockwise, into the signed
// sweep of a vg arc, whose angles grow counter-clockwise.
func arcSweep(start, end float64, ccw bool) float64 {
	const full = 2 * math.Pi
	if math.Abs(end-start) >= full {
		if ccw {
			return full
		}
		return -full
	}
	if ccw {
		return math.Mod(math.Mod(start-end, full)+full, full)
	}
	return -math.Mod(math.Mod(end-start, full)+full, full)
}

func (s *Surface) DrawArc(x, y, r, start, end float64, c color.Color, ccw, fill bool) {
	center := s.pt(x, y)
	rad := vg.Length(r)
	var p vg.Path
	p.Move(vg.Point{
		X: center.X + rad*vg.Length(math.Cos(-start)),
		Y: center.Y + rad*vg.Length(math.Sin(-start)),
	})
	p.Arc(center, rad, -start, arcSweep(start, end, ccw))
	s.dc.SetColor(c)
	if fill {
		p.Close()
		s.dc.Fill(p)
		return
	}
	s.dc.SetLineWidth(1)
	s.dc.Stroke(p)
}

func variant(family string) font.Variant {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"):
		return "Mono"
	case f == "serif", strings.Contains(f, "times"), strings.Contains(f, "georgia"):
		return "Serif"
	}
	return "Sans"
}

func textStyle(st surface.TextStyle) text.Style {
	fnt := st.Font
	if fnt.Size <= 0 {
		fnt = surface.DefaultFont
	}
	c := st.Color
	if c == nil {
		c = color.Black
	}
	ts := text.Style{
		Color: c,
		Font: font.Font{
			Typeface: "Liberation",
			Variant:  variant(fnt.Family),
			Size:     vg.Length(fnt.Size),
		},
		Handler: text.Plain{Fonts: fonts},
	}
	switch st.Align {
	case surface.AlignCenter:
		ts.XAlign = text.XCenter
	case surface.AlignRight:
		ts.XAlign = text.XRight
	default:
		ts.XAlign = text.XLeft
	}
	switch st.Baseline {
	case surface.BaselineTop:
		ts.YAlign = text.YTop
	case surface.BaselineMiddle:
		ts.YAlign = text.YCenter
	default:
		ts.YAlign = text.YBottom
	}
	return ts
}

func (s *Surface) DrawText(txt string, x, y float64, st surface.TextStyle) {
	s.dc.FillText(textStyle(st), s.pt(x, y), txt)
}

// OverlayText draws into the margin. Anchors outside of the margin are
// refused.
func (s *Surface) OverlayText(txt string, x, y float64, st surface.TextStyle) bool {
	if s.margin == 0 {
		return false
	}
	m := float64(s.margin)
	if x < -m || y < -m || x > float64(s.w)+m || y > float64(s.h)+m {
		return false
	}
	s.DrawText(txt, x, y, st)
	return true
}

// WriteTo encodes the document in the surface's format.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	return s.c.WriteTo(w)
}

// Image returns the rendered raster, or nil for vector formats.
func (s *Surface) Image() image.Image {
	if s.img == nil {
		return nil
	}
	return s.img.Image()
}

var (
	_ surface.Surface = (*Surface)(nil)
	_ surface.Overlay = (*Surface)(nil)
	_ surface.Resizer = (*Surface)(nil)
)
