package chart

import (
	"fmt"
	"math"
)

// Phase is the step a layout pass is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMeasuring
	PhasePositioning
	PhaseDrawing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMeasuring:
		return "measuring"
	case PhasePositioning:
		return "positioning"
	case PhaseDrawing:
		return "drawing"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Chart is a chart configuration plus the little state that survives
// between passes: the points of the last pass, for hit testing, and the
// tooltip.
type Chart struct {
	Config      Config
	Entries     []Entry
	AreaEntries []AreaEntry

	Scales ScaleProvider
	Curves CurveStrategy
	Labels LabelStrategy

	// Tooltip is exported so hosts that rebuild charts per request can carry
	// it over.
	Tooltip Tooltip

	last *Frame
}

// New returns a chart with the strategies of cfg.Kind.
func New(cfg Config, entries []Entry) *Chart {
	c := &Chart{
		Config:  cfg,
		Entries: entries,
		Scales:  NiceScaler{},
		Labels:  RotatingLabels{},
	}
	switch cfg.Kind {
	case KindLine:
		c.Curves = Curves{}
	default:
		c.Curves = Columns{}
	}
	return c
}

// valueBounds is the value range covering all entries and all area
// entries. Each end also covers zero unless that end is configured, in which
// case the configured bound is used as long as the data stays within it.
func (c *Chart) valueBounds(cfg Config) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, e := range c.Entries {
		min = math.Min(min, e.Value)
		max = math.Max(max, e.Value)
	}
	for _, a := range c.AreaEntries {
		min = math.Min(min, math.Min(a.FromValue, a.ToValue))
		max = math.Max(max, math.Max(a.FromValue, a.ToValue))
	}
	if cfg.MinValue != nil {
		min = math.Min(min, *cfg.MinValue)
	} else {
		min = math.Min(min, 0)
	}
	if cfg.MaxValue != nil {
		max = math.Max(max, *cfg.MaxValue)
	} else {
		max = math.Max(max, 0)
	}
	if min == max {
		max = min + 1
	}
	return min, max
}

// Layout runs the measuring and positioning phases. The returned frame is
// also kept for HitTest.
func (c *Chart) Layout(m Measurer, size Size, progress float64) (*Frame, error) {
	cfg, err := c.Config.normalize()
	if err != nil {
		return nil, err
	}
	f := &Frame{
		Phase:    PhaseIdle,
		Config:   cfg,
		Viewport: size,
		Progress: clamp01(progress),
		chart:    c,
	}
	if err := f.measure(m); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Phase, err)
	}
	if err := f.position(); err != nil {
		return nil, fmt.Errorf("%s: %w", f.Phase, err)
	}
	c.last = f
	return f, nil
}

// Render lays the chart out on s and draws it.
func (c *Chart) Render(s Surface, size Size, progress float64) (*Frame, error) {
	f, err := c.Layout(s, size, progress)
	if err != nil {
		return nil, err
	}
	f.Draw(s)
	return f, nil
}

// Record renders c onto a Recorder and returns the draw calls.
func Record(c *Chart, m Measurer, size Size, progress float64) ([]DrawCall, error) {
	r := &Recorder{Measurer: m}
	if _, err := c.Render(r, size, progress); err != nil {
		return nil, err
	}
	return r.Calls, nil
}
