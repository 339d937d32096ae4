package chart

import (
	"image/color"
	"math"
)

// Tick is one Y axis tick with its label anchor.
type Tick struct {
	Value float64
	Label string
	At    Point
	Box   Rect
}

// Frame is the geometry of one layout pass.
type Frame struct {
	Phase    Phase
	Config   Config
	Viewport Size
	Progress float64

	Mapper Mapper
	Item   Size
	Origin float64
	Header float64
	Footer float64
	// PlotWidth is the viewport width left after the Y axis labels.
	PlotWidth float64

	Labels          []string
	LabelBoxes      []Rect
	LabelXs         []float64
	ValueLabels     []string
	ValueLabelBoxes []Rect

	Scale *Scale
	Ticks []Tick

	Points     []Point
	FromPoints []Point
	ToPoints   []Point

	chart *Chart
}

func (f *Frame) measure(m Measurer) error {
	f.Phase = PhaseMeasuring
	c, cfg := f.chart, f.Config

	if f.Viewport.Width <= 0 || f.Viewport.Height <= 0 || !finite(f.Viewport.Width, f.Viewport.Height) {
		return errorf("viewport %vx%v", f.Viewport.Width, f.Viewport.Height)
	}
	if len(c.Entries) == 0 {
		return errorf("no entries")
	}

	min, max := c.valueBounds(cfg)
	f.PlotWidth = f.Viewport.Width
	f.Mapper = Mapper{Margin: cfg.Margin, MinValue: min, MaxValue: max, Progress: f.Progress}

	if cfg.ShowYAxisText || cfg.ShowYAxisLines {
		s, err := c.Scales.Scale(min, max, cfg.YAxisMaxTicks)
		if err != nil {
			return err
		}
		f.Scale = &s
		// Ticks are only meaningful when they land inside the plot.
		f.Mapper.MinValue = math.Min(min, s.NiceMin)
		f.Mapper.MaxValue = math.Max(max, s.NiceMax)

		var longest string
		for _, v := range s.Ticks() {
			label := cfg.FormatTick(v)
			if len(label) > len(longest) {
				longest = label
			}
			f.Ticks = append(f.Ticks, Tick{Value: v, Label: label})
		}
		for i := range f.Ticks {
			f.Ticks[i].Box = m.MeasureText(f.Ticks[i].Label, cfg.YAxisTextSize)
		}
		w := m.MeasureText(longest, cfg.YAxisTextSize).Width()
		f.PlotWidth -= w
		if cfg.YAxisPosition == PositionLeft {
			f.Mapper.OriginX = w
		}
	}
	if err := f.Mapper.Validate(); err != nil {
		return err
	}

	if len(cfg.XAxisLabels) > 0 {
		f.Labels = cfg.XAxisLabels
	} else {
		f.Labels = make([]string, len(c.Entries))
		for i, e := range c.Entries {
			f.Labels[i] = e.Label
		}
	}
	f.LabelBoxes = MeasureLabels(m, f.Labels, cfg.LabelTextSize)
	f.Footer = BandHeight(f.LabelBoxes, f.Labels, cfg.LabelOrientation, cfg.Margin, cfg.LabelTextSize)

	f.ValueLabels = make([]string, len(c.Entries))
	for i, e := range c.Entries {
		f.ValueLabels[i] = e.ValueLabel
	}
	f.ValueLabelBoxes = MeasureLabels(m, f.ValueLabels, cfg.LabelTextSize)
	f.Header = BandHeight(f.ValueLabelBoxes, f.ValueLabels, cfg.ValueLabelOrientation, cfg.Margin, cfg.LabelTextSize)
	return nil
}

func (f *Frame) position() error {
	f.Phase = PhasePositioning
	c := f.chart

	// X axis labels may outnumber the entries, never the other way round.
	slots := max(len(c.Entries), len(f.Labels))
	item, err := f.Mapper.ItemSize(f.PlotWidth, f.Viewport.Height, f.Footer, f.Header, slots)
	if err != nil {
		return err
	}
	if item.Width <= 0 || item.Height <= 0 {
		return errorf("viewport %vx%v too small for %d items",
			f.Viewport.Width, f.Viewport.Height, slots)
	}
	f.Item = item
	f.Origin = f.Mapper.Origin(item.Height, f.Header)

	values := make([]float64, len(c.Entries))
	for i, e := range c.Entries {
		values[i] = e.Value
	}
	f.Points = f.Mapper.Points(values, item, f.Origin, f.Header)
	f.LabelXs = f.Mapper.LabelXs(len(f.Labels), item)

	if len(c.AreaEntries) > 0 {
		from := make([]float64, len(c.AreaEntries))
		to := make([]float64, len(c.AreaEntries))
		for i, a := range c.AreaEntries {
			from[i], to[i] = a.FromValue, a.ToValue
		}
		f.FromPoints = f.Mapper.Points(from, item, f.Origin, f.Header)
		f.ToPoints = f.Mapper.Points(to, item, f.Origin, f.Header)
	}

	// The axis does not animate: ticks sit where fully resolved values go.
	static := f.Mapper
	static.Progress = 1
	x := f.PlotWidth
	if f.Config.YAxisPosition == PositionLeft {
		x = f.Mapper.OriginX
	}
	for i := range f.Ticks {
		f.Ticks[i].At = Point{X: x, Y: static.Point(f.Ticks[i].Value, 0, item, f.Origin, f.Header).Y}
	}
	return nil
}

// Draw hands the frame to s.
func (f *Frame) Draw(s Surface) {
	f.Phase = PhaseDrawing
	c, cfg := f.chart, f.Config

	f.drawYAxis(s)
	c.Curves.DrawSeries(s, f)
	f.drawPoints(s, f.Points, entryColors(c.Entries))

	header := make([]Point, len(f.Points))
	headerColors := make([]color.NRGBA, len(f.Points))
	alpha := uint8(math.Round(255 * f.Progress))
	for i, p := range f.Points {
		header[i] = Point{p.X, f.Header - cfg.Margin}
		headerColors[i] = withAlpha(c.Entries[i].Color, alpha)
	}
	c.Labels.DrawLabels(s, LabelPlacement{
		Texts:       f.ValueLabels,
		Anchors:     header,
		Boxes:       f.ValueLabelBoxes,
		Colors:      headerColors,
		Orientation: cfg.ValueLabelOrientation,
		Top:         true,
		ItemWidth:   f.Item.Width,
		TextSize:    cfg.LabelTextSize,
	})

	footer := make([]Point, len(f.LabelXs))
	footerColors := make([]color.NRGBA, len(f.LabelXs))
	for i, x := range f.LabelXs {
		footer[i] = Point{x, f.Viewport.Height - f.Footer + cfg.Margin}
		footerColors[i] = cfg.LabelColor
	}
	c.Labels.DrawLabels(s, LabelPlacement{
		Texts:       f.Labels,
		Anchors:     footer,
		Boxes:       f.LabelBoxes,
		Colors:      footerColors,
		Orientation: cfg.LabelOrientation,
		ItemWidth:   f.Item.Width,
		TextSize:    cfg.LabelTextSize,
	})

	f.drawBands(s)
	f.drawTooltip(s)
}

func (f *Frame) drawYAxis(s Surface) {
	cfg := f.Config
	left := cfg.YAxisPosition == PositionLeft
	if cfg.ShowYAxisText {
		align := AlignLeft
		if left {
			align = AlignRight
		}
		for _, t := range f.Ticks {
			// Centre the text bounds vertically on the tick.
			at := Point{t.At.X, t.At.Y - (t.Box.Min.Y+t.Box.Max.Y)/2}
			s.DrawText(t.Label, at, TextStyle{Size: cfg.YAxisTextSize, Color: cfg.YAxisTextColor, Align: align})
		}
	}
	if cfg.ShowYAxisLines {
		paint := Paint{Color: cfg.YAxisLineColor, Width: 1}
		x0 := f.Mapper.OriginX
		for _, t := range f.Ticks {
			s.DrawLine(
				Point{x0 + cfg.Margin/2, t.At.Y},
				Point{x0 + f.PlotWidth - cfg.Margin/2, t.At.Y},
				paint)
		}
	}
}

func (f *Frame) drawPoints(s Surface, points []Point, colors []color.NRGBA) {
	cfg := f.Config
	if cfg.PointMode == PointNone {
		return
	}
	for i, p := range points {
		s.DrawPoint(p, colors[i], cfg.PointSize, cfg.PointMode)
	}
}

// drawBands draws the area entries: their points, the area between the two
// series and both lines.
func (f *Frame) drawBands(s Surface) {
	c, cfg := f.chart, f.Config
	if len(c.AreaEntries) == 0 {
		return
	}
	colors := make([]color.NRGBA, len(c.AreaEntries))
	for i, a := range c.AreaEntries {
		colors[i] = a.Color
	}
	if cfg.ShowAreaPoints {
		f.drawPoints(s, f.FromPoints, colors)
		f.drawPoints(s, f.ToPoints, colors)
	}
	if cfg.LineAreaAlpha > 0 {
		// Both point sets come from the same entries, so lengths match.
		if p, ok, err := BandFill(f.FromPoints, f.ToPoints, cfg.LineMode, f.Item.Width); err != nil {
			panic("This is a bug: " + err.Error())
		} else if ok {
			s.FillPath(p, Paint{Shader: f.areaShader(s, f.FromPoints, colors)})
		}
	}
	f.drawLine(s, f.FromPoints, colors)
	f.drawLine(s, f.ToPoints, colors)
}

func (f *Frame) drawLine(s Surface, points []Point, colors []color.NRGBA) {
	p, ok := Stroke(points, f.Config.LineMode, f.Item.Width)
	if !ok {
		return
	}
	s.StrokePath(p, Paint{
		Shader: xGradient(s, points, colors, 255),
		Width:  f.Config.LineSize,
	})
}

// areaShader is the horizontal colour gradient of an area fill, faded with
// the animation and optionally towards the top.
func (f *Frame) areaShader(s Surface, points []Point, colors []color.NRGBA) Shader {
	alpha := scaleAlpha(f.Config.LineAreaAlpha, f.Progress)
	x := xGradient(s, points, colors, alpha)
	if !f.Config.YFadeOut {
		return x
	}
	var bottom float64
	for _, p := range points {
		bottom = math.Max(bottom, p.Y)
	}
	y := s.CreateLinearGradient(
		Point{0, bottom}, Point{0, 0},
		[]color.NRGBA{withAlpha(white, alpha), withAlpha(white, 0)},
		TileClamp)
	return s.CreateComposedShader(y, x, BlendSrcOut)
}

func xGradient(s Surface, points []Point, colors []color.NRGBA, alpha uint8) Shader {
	stops := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		stops[i] = withAlpha(c, alpha)
	}
	return s.CreateLinearGradient(
		Point{points[0].X, 0}, Point{points[len(points)-1].X, 0},
		stops, TileClamp)
}

func entryColors(entries []Entry) []color.NRGBA {
	colors := make([]color.NRGBA, len(entries))
	for i, e := range entries {
		colors[i] = e.Color
	}
	return colors
}
