// Package vgsurface draws charts on gonum/plot vector graphics canvases,
// which gives svg, png, pdf, eps, jpg and tif output.
package vgsurface

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/susji/lilchart/chart"
)

// Font is used for all text.
var Font = font.Font{Typeface: "Liberation", Variant: "Sans"}

var fonts = font.NewCache(liberation.Collection())

// kappa places the control points of a cubic approximating a quarter
// circle.
const kappa = 0.5522847498

// Surface implements chart.Surface on a vg.Canvas. Chart coordinates have
// their origin at the top left of rect and grow downwards; vg grows
// upwards, so every point is flipped on the way out.
type Surface struct {
	c     vg.Canvas
	rect  vg.Rectangle
	m     affine
	stack []affine
}

// New returns a surface drawing into the width x height area at the
// origin of c.
func New(c vg.Canvas, width, height vg.Length) *Surface {
	return NewIn(draw.Canvas{
		Canvas:    c,
		Rectangle: vg.Rectangle{Max: vg.Point{X: width, Y: height}},
	})
}

// NewIn returns a surface drawing into the rectangle of dc.
func NewIn(dc draw.Canvas) *Surface {
	return &Surface{
		c:    dc.Canvas,
		rect: dc.Rectangle,
		m:    identity,
	}
}

// NewFormatted creates a canvas of the given format, one of the formats
// draw.NewFormattedCanvas knows, and a surface covering all of it.
func NewFormatted(width, height float64, format string) (*Surface, vg.CanvasWriterTo, error) {
	w, h := vg.Length(width), vg.Length(height)
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, nil, err
	}
	return New(c, w, h), c, nil
}

// Render draws ch at progress on a fresh canvas of the given format filled
// with the chart's background colour, and writes the image to w.
func Render(w io.Writer, ch *chart.Chart, size chart.Size, format string, progress float64) (*chart.Frame, error) {
	s, c, err := NewFormatted(size.Width, size.Height, format)
	if err != nil {
		return nil, err
	}
	s.Clear(ch.Config.BackgroundColor)
	f, err := ch.Render(s, size, progress)
	if err != nil {
		return nil, err
	}
	if _, err := c.WriteTo(w); err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", format, err)
	}
	return f, nil
}

// Clear fills the whole surface with bg.
func (s *Surface) Clear(bg color.Color) {
	s.c.SetColor(bg)
	s.c.Fill(s.rect.Path())
}

func (s *Surface) face(size float64) font.Face {
	return fonts.Lookup(Font, vg.Length(size))
}

func (s *Surface) MeasureText(text string, size float64) chart.Rect {
	if text == "" {
		return chart.Rect{}
	}
	f := s.face(size)
	e := f.Extents()
	return chart.Rect{
		Min: chart.Point{X: 0, Y: -float64(e.Ascent)},
		Max: chart.Point{X: float64(f.Width(text)), Y: float64(e.Descent)},
	}
}

// pt maps a chart point through the current transform into vg space.
func (s *Surface) pt(p chart.Point) vg.Point {
	d := s.m.apply(p)
	return vg.Point{
		X: s.rect.Min.X + vg.Length(d.X),
		Y: s.rect.Max.Y - vg.Length(d.Y),
	}
}

func (s *Surface) path(p chart.Path) vg.Path {
	var vp vg.Path
	for _, op := range p.Ops {
		switch op.Kind {
		case chart.MoveTo:
			vp.Move(s.pt(op.Points[0]))
		case chart.LineTo:
			vp.Line(s.pt(op.Points[0]))
		case chart.CubicTo:
			vp.CubeTo(s.pt(op.Points[0]), s.pt(op.Points[1]), s.pt(op.Points[2]))
		case chart.Close:
			vp.Close()
		default:
			panic(fmt.Sprintf("This is a bug: path op kind == %d", op.Kind))
		}
	}
	return vp
}

func (s *Surface) StrokePath(p chart.Path, paint chart.Paint) {
	s.c.SetLineWidth(vg.Length(paint.Width))
	s.c.SetColor(resolve(paint))
	s.c.Stroke(s.path(p))
}

func (s *Surface) FillPath(p chart.Path, paint chart.Paint) {
	s.c.SetColor(resolve(paint))
	s.c.Fill(s.path(p))
}

func (s *Surface) DrawPoint(at chart.Point, c color.NRGBA, size float64, mode chart.PointMode) {
	r := size / 2
	var p chart.Path
	switch mode {
	case chart.PointNone:
		return
	case chart.PointSquare:
		p = rectPath(chart.Rect{
			Min: chart.Point{X: at.X - r, Y: at.Y - r},
			Max: chart.Point{X: at.X + r, Y: at.Y + r},
		}, 0)
	default:
		p = rectPath(chart.Rect{
			Min: chart.Point{X: at.X - r, Y: at.Y - r},
			Max: chart.Point{X: at.X + r, Y: at.Y + r},
		}, r)
	}
	s.FillPath(p, chart.Paint{Color: c})
}

func (s *Surface) DrawRect(r chart.Rect, paint chart.Paint) {
	s.FillPath(rectPath(r, 0), paint)
}

func (s *Surface) DrawRoundRect(r chart.Rect, radius float64, paint chart.Paint) {
	s.FillPath(rectPath(r, radius), paint)
}

func (s *Surface) DrawLine(a, b chart.Point, paint chart.Paint) {
	var p chart.Path
	p.MoveTo(a)
	p.LineTo(b)
	s.StrokePath(p, paint)
}

func (s *Surface) DrawText(text string, at chart.Point, style chart.TextStyle) {
	if text == "" {
		return
	}
	f := s.face(style.Size)
	var dx vg.Length
	switch style.Align {
	case chart.AlignCenter:
		dx = -f.Width(text) / 2
	case chart.AlignRight:
		dx = -f.Width(text)
	}
	s.c.Push()
	defer s.c.Pop()
	s.c.SetColor(style.Color)
	s.c.Translate(s.pt(at))
	// Clockwise in chart space is counter-clockwise in vg space.
	s.c.Rotate(-s.m.angle())
	s.c.FillString(f, vg.Point{X: dx}, text)
}

func (s *Surface) CreateLinearGradient(start, end chart.Point, colors []color.NRGBA, mode chart.TileMode) chart.Shader {
	return chart.LinearGradient{Start: start, End: end, Colors: colors, Mode: mode}
}

func (s *Surface) CreateComposedShader(dst, src chart.Shader, mode chart.BlendMode) chart.Shader {
	return chart.ComposedShader{Dst: dst, Src: src, Mode: mode}
}

func (s *Surface) Save() { s.stack = append(s.stack, s.m) }

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		panic("This is a bug: Restore without Save")
	}
	s.m = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Translate(dx, dy float64) { s.m = s.m.mul(translation(dx, dy)) }
func (s *Surface) Rotate(degrees float64)   { s.m = s.m.mul(rotation(degrees)) }

// rectPath outlines r, with corners rounded by radius when positive.
func rectPath(r chart.Rect, radius float64) chart.Path {
	var p chart.Path
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	if radius <= 0 {
		p.MoveTo(r.Min)
		p.LineTo(chart.Point{X: r.Max.X, Y: r.Min.Y})
		p.LineTo(r.Max)
		p.LineTo(chart.Point{X: r.Min.X, Y: r.Max.Y})
		p.Close()
		return p
	}
	k := radius * kappa
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	p.MoveTo(chart.Point{X: x0 + radius, Y: y0})
	p.LineTo(chart.Point{X: x1 - radius, Y: y0})
	p.CubicTo(chart.Point{X: x1 - radius + k, Y: y0}, chart.Point{X: x1, Y: y0 + radius - k}, chart.Point{X: x1, Y: y0 + radius})
	p.LineTo(chart.Point{X: x1, Y: y1 - radius})
	p.CubicTo(chart.Point{X: x1, Y: y1 - radius + k}, chart.Point{X: x1 - radius + k, Y: y1}, chart.Point{X: x1 - radius, Y: y1})
	p.LineTo(chart.Point{X: x0 + radius, Y: y1})
	p.CubicTo(chart.Point{X: x0 + radius - k, Y: y1}, chart.Point{X: x0, Y: y1 - radius + k}, chart.Point{X: x0, Y: y1 - radius})
	p.LineTo(chart.Point{X: x0, Y: y0 + radius})
	p.CubicTo(chart.Point{X: x0, Y: y0 + radius - k}, chart.Point{X: x0 + radius - k, Y: y0}, chart.Point{X: x0 + radius, Y: y0})
	p.Close()
	return p
}
