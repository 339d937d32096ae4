// Package chart lays out point, line and area charts and hands the resulting
// geometry to a drawing surface.
//
// The engine is a pure function of its entries, configuration, viewport size
// and the animation progress supplied by the host: every call to
// Chart.Layout recomputes label bands, item size, origin and points from
// scratch.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	// ErrInvalidConfiguration is returned for inputs that would make the
	// layout divide by zero or produce non-finite coordinates.
	ErrInvalidConfiguration = errors.New("invalid chart configuration")

	// ErrMismatchedSeries is returned when two series that must correspond
	// index for index have different lengths.
	ErrMismatchedSeries = errors.New("mismatched series lengths")
)

func errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfiguration}, args...)...)
}

// Entry is one data point plotted along the horizontal axis.
type Entry struct {
	Value      float64
	Label      string
	ValueLabel string
	Color      color.NRGBA
}

// AreaEntry is one band of a dual-line area: the area between FromValue and
// ToValue at the same index.
type AreaEntry struct {
	FromValue float64
	ToValue   float64
	Color     color.NRGBA
}

// Point is a position in surface coordinates. Y grows downwards.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is the horizontal slot width of one entry and the usable vertical
// drawing height.
type Size struct {
	Width, Height float64
}

// Rect is an axis aligned rectangle. Text bounds follow the usual baseline
// convention: Min.Y is negative for glyphs rising above the baseline.
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// scaleAlpha returns alpha*progress clamped to a byte.
func scaleAlpha(alpha uint8, progress float64) uint8 {
	return uint8(math.Round(float64(alpha) * clamp01(progress)))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
