package chart

import (
	"fmt"
	"image/color"
	"strconv"
)

// Kind is the chart flavour. It only selects strategies and defaults.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Position of the Y axis labels.
type Position int

const (
	PositionRight Position = iota
	PositionLeft
)

// Config holds everything a layout pass reads besides entries, viewport
// and progress.
type Config struct {
	Kind Kind

	Margin          float64
	LabelTextSize   float64
	LabelColor      color.NRGBA
	BackgroundColor color.NRGBA

	LabelOrientation      Orientation
	ValueLabelOrientation Orientation
	// XAxisLabels replace the entry labels in the footer when non-empty.
	XAxisLabels []string

	// MinValue and MaxValue replace zero as the bottom and top of the
	// value range. Entries outside them still widen the range.
	MinValue *float64
	MaxValue *float64

	PointSize      float64
	PointMode      PointMode
	PointAreaAlpha uint8

	LineSize       float64
	LineMode       LineMode
	LineAreaAlpha  uint8
	YFadeOut       bool
	ShowAreaPoints bool

	ShowYAxisText  bool
	ShowYAxisLines bool
	YAxisMaxTicks  int
	YAxisPosition  Position
	YAxisTextSize  float64
	YAxisTextColor color.NRGBA
	YAxisLineColor color.NRGBA
	// FormatTick formats Y axis tick labels.
	FormatTick func(float64) string

	TooltipEnabled         bool
	TouchRadius            float64
	TooltipYOffset         float64
	TooltipTextSize        float64
	TooltipRadius          float64
	TooltipTextColor       color.NRGBA
	TooltipBackgroundColor color.NRGBA
}

var (
	black = color.NRGBA{0, 0, 0, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

// DefaultConfig returns the defaults for kind.
func DefaultConfig(kind Kind) Config {
	c := Config{
		Kind:                   kind,
		Margin:                 20,
		LabelTextSize:          16,
		LabelColor:             color.NRGBA{0x88, 0x88, 0x88, 0xff},
		BackgroundColor:        white,
		PointSize:              14,
		PointMode:              PointCircle,
		PointAreaAlpha:         100,
		LineSize:               3,
		LineMode:               LineSpline,
		LineAreaAlpha:          32,
		ShowAreaPoints:         true,
		YAxisMaxTicks:          5,
		YAxisPosition:          PositionRight,
		YAxisTextSize:          16,
		YAxisTextColor:         black,
		YAxisLineColor:         withAlpha(black, 0x13),
		TouchRadius:            33,
		TooltipYOffset:         50,
		TooltipTextSize:        50,
		TooltipRadius:          20,
		TooltipTextColor:       white,
		TooltipBackgroundColor: color.NRGBA{0x4f, 0x4f, 0x4f, 0xff},
	}
	if kind == KindLine {
		c.PointSize = 10
	}
	return c
}

// normalize resolves sentinel values and checks what a layout pass would
// otherwise divide by.
func (c Config) normalize() (Config, error) {
	c.LabelOrientation = c.LabelOrientation.normalize()
	c.ValueLabelOrientation = c.ValueLabelOrientation.normalize()
	if c.FormatTick == nil {
		c.FormatTick = formatTick
	}
	if c.YAxisMaxTicks < 1 {
		c.YAxisMaxTicks = 1
	}
	if c.Margin < 0 || !finite(c.Margin, c.LabelTextSize, c.PointSize, c.LineSize) {
		return c, fmt.Errorf("%w: bad sizes", ErrInvalidConfiguration)
	}
	if c.MinValue != nil && c.MaxValue != nil && *c.MinValue > *c.MaxValue {
		return c, fmt.Errorf("%w: min value %v above max value %v",
			ErrInvalidConfiguration, *c.MinValue, *c.MaxValue)
	}
	return c, nil
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
