package chart

import "github.com/mattn/go-runewidth"

// MonoMeasurer measures text as if every terminal cell were Advance em
// wide, 0.6 when zero. It needs no font files, which makes layouts
// reproducible across machines.
type MonoMeasurer struct {
	Advance float64
}

func (m MonoMeasurer) MeasureText(text string, size float64) Rect {
	if text == "" {
		return Rect{}
	}
	adv := m.Advance
	if adv == 0 {
		adv = 0.6
	}
	w := float64(runewidth.StringWidth(text)) * adv * size
	return Rect{
		Min: Point{0, -0.8 * size},
		Max: Point{w, 0.2 * size},
	}
}
