package chart

import (
	"fmt"
	"math"
)

// Scale is a human friendly axis range.
type Scale struct {
	Range       float64
	TickSpacing float64
	NiceMin     float64
	NiceMax     float64
}

// ScaleProvider picks axis ticks for a value range.
type ScaleProvider interface {
	Scale(min, max float64, maxTicks int) (Scale, error)
}

// NiceScaler is the ScaleProvider backed by NiceScale.
type NiceScaler struct{}

func (NiceScaler) Scale(min, max float64, maxTicks int) (Scale, error) {
	return NiceScale(min, max, maxTicks)
}

// NiceScale snaps the range [min, max] to round tick values. The tick
// spacing is the smallest of 1, 2, 2.5, 5 or 10 times a power of ten that is
// not below (max-min)/maxTicks; niceness wins over matching maxTicks
// exactly.
func NiceScale(min, max float64, maxTicks int) (Scale, error) {
	if maxTicks < 1 {
		return Scale{}, fmt.Errorf("%w: max ticks %d", ErrInvalidConfiguration, maxTicks)
	}
	if !finite(min, max) {
		return Scale{}, fmt.Errorf("%w: scale bounds %v, %v", ErrInvalidConfiguration, min, max)
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		d := math.Abs(min) * 0.05
		if d == 0 {
			d = 1
		}
		min -= d
		max += d
	}
	if !finite(max - min) {
		return Scale{}, fmt.Errorf("%w: scale range %v, %v overflows", ErrInvalidConfiguration, min, max)
	}

	spacing := niceCeil((max - min) / float64(maxTicks))
	s := Scale{
		TickSpacing: spacing,
		NiceMin:     math.Floor(min/spacing) * spacing,
		NiceMax:     math.Ceil(max/spacing) * spacing,
	}
	s.Range = s.NiceMax - s.NiceMin
	if !finite(s.TickSpacing, s.NiceMin, s.NiceMax, s.Range) || s.TickSpacing <= 0 {
		return Scale{}, fmt.Errorf("%w: no finite scale for %v, %v", ErrInvalidConfiguration, min, max)
	}
	return s, nil
}

// niceCeil returns the smallest nice number not below v.
func niceCeil(v float64) float64 {
	pow := math.Pow(10, math.Floor(math.Log10(v)))
	// Leave room for rounding, 0.2/0.1 is slightly above 2.
	fraction := v / pow * (1 - 1e-9)

	var nice float64
	switch {
	case fraction <= 1:
		nice = 1
	case fraction <= 2:
		nice = 2
	case fraction <= 2.5:
		nice = 2.5
	case fraction <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * pow
}

// Ticks returns the tick values from NiceMax downwards, round(Range /
// TickSpacing) of them.
func (s Scale) Ticks() []float64 {
	if s.TickSpacing <= 0 {
		return nil
	}
	n := int(math.Round(s.Range / s.TickSpacing))
	ticks := make([]float64, n)
	for i := range ticks {
		// Computed from NiceMax each time to avoid accumulating error.
		ticks[i] = s.NiceMax - float64(i)*s.TickSpacing
	}
	return ticks
}
