package chart

import (
	"image/color"
	"math"
)

// CurveStrategy draws the main series of a frame: whatever goes under and
// between the points.
type CurveStrategy interface {
	DrawSeries(s Surface, f *Frame)
}

// Columns draws a gradient column from the origin line to every point, the
// look of a point chart.
type Columns struct{}

func (Columns) DrawSeries(s Surface, f *Frame) {
	cfg := f.Config
	if cfg.PointAreaAlpha == 0 {
		return
	}
	for i, p := range f.Points {
		c := f.chart.Entries[i].Color
		shader := s.CreateLinearGradient(
			Point{0, f.Origin}, Point{0, p.Y},
			[]color.NRGBA{withAlpha(c, cfg.PointAreaAlpha), withAlpha(c, cfg.PointAreaAlpha/3)},
			TileClamp)
		top := math.Min(f.Origin, p.Y)
		h := math.Max(2, math.Abs(f.Origin-p.Y))
		s.DrawRect(Rect{
			Min: Point{p.X - cfg.PointSize/2, top},
			Max: Point{p.X + cfg.PointSize/2, top + h},
		}, Paint{Color: withAlpha(c, cfg.PointAreaAlpha), Shader: shader})
	}
}

// Curves fills the area between the line and the origin and strokes the
// line on top, the look of a line chart.
type Curves struct{}

func (Curves) DrawSeries(s Surface, f *Frame) {
	colors := entryColors(f.chart.Entries)
	if f.Config.LineAreaAlpha > 0 {
		if p, ok := AreaFill(f.Points, f.Config.LineMode, f.Item.Width, f.Origin); ok {
			s.FillPath(p, Paint{Shader: f.areaShader(s, f.Points, colors)})
		}
	}
	f.drawLine(s, f.Points, colors)
}
