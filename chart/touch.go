package chart

import "strconv"

// Tooltip is the tap state of a chart: the point a tooltip is shown for.
type Tooltip struct {
	Visible bool
	Point   Point
	Entry   Entry
}

// Tap updates t for a tap at loc. The first point within radius of loc that
// is not the currently shown one gets the tooltip; tapping the shown point
// again, or tapping nowhere near a point, hides it.
func (t *Tooltip) Tap(points []Point, entries []Entry, loc Point, radius float64) {
	r2 := radius * radius
	for i, p := range points {
		dx, dy := p.X-loc.X, p.Y-loc.Y
		if dx*dx+dy*dy > r2 {
			continue
		}
		if !t.Visible || t.Point != p {
			*t = Tooltip{Visible: true, Point: p, Entry: entries[i]}
			return
		}
	}
	*t = Tooltip{}
}

// HitTest taps the points of the last layout pass at loc and returns the
// entry the tooltip is now shown for.
func (c *Chart) HitTest(loc Point) (Entry, bool) {
	if !c.Config.TooltipEnabled || c.last == nil {
		c.Tooltip = Tooltip{}
		return Entry{}, false
	}
	c.Tooltip.Tap(c.last.Points, c.Entries, loc, c.Config.TouchRadius)
	return c.Tooltip.Entry, c.Tooltip.Visible
}

func (f *Frame) drawTooltip(s Surface) {
	t, cfg := f.chart.Tooltip, f.Config
	if !t.Visible {
		return
	}
	found := false
	for _, p := range f.Points {
		if p == t.Point {
			found = true
			break
		}
	}
	if !found {
		return
	}

	text := tooltipText(t.Entry)
	size := cfg.TooltipTextSize
	y := t.Point.Y - cfg.TooltipYOffset - size
	b := s.MeasureText(text, size)
	left := t.Point.X - b.Width()/2
	bg := Rect{
		Min: Point{left - size/2, y + b.Min.Y - size},
		Max: Point{left + b.Width() + size/2, y + b.Max.Y + size},
	}
	s.DrawRoundRect(bg, cfg.TooltipRadius, Paint{Color: cfg.TooltipBackgroundColor})
	s.DrawText(text, Point{t.Point.X, y}, TextStyle{Size: size, Color: cfg.TooltipTextColor, Align: AlignCenter})
}

func tooltipText(e Entry) string {
	switch {
	case e.Label != "":
		return e.Label
	case e.ValueLabel != "":
		return e.ValueLabel
	}
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}
