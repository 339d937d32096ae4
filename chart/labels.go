package chart

import "image/color"

// Orientation of footer and header labels.
type Orientation int

const (
	OrientationDefault Orientation = iota
	OrientationVertical
	OrientationHorizontal
	// OrientationNone hides the labels and reserves no band for them.
	OrientationNone
)

func (o Orientation) normalize() Orientation {
	if o == OrientationDefault {
		return OrientationVertical
	}
	return o
}

// MeasureLabels measures each text at size. Empty texts measure as the
// zero Rect.
func MeasureLabels(m Measurer, texts []string, size float64) []Rect {
	boxes := make([]Rect, len(texts))
	for i, text := range texts {
		if text == "" {
			continue
		}
		boxes[i] = m.MeasureText(text, size)
	}
	return boxes
}

// BandHeight is the vertical space a footer or header reserves for labels.
// Without any non-empty label only the margin is reserved.
func BandHeight(boxes []Rect, texts []string, o Orientation, margin, textSize float64) float64 {
	band := margin
	if o == OrientationNone || !anyText(texts) {
		return band
	}
	if o.normalize() == OrientationVertical {
		var maxw float64
		for _, b := range boxes {
			if w := b.Width(); w > maxw {
				maxw = w
			}
		}
		if maxw > 0 {
			band += maxw + margin
		}
		return band
	}
	return band + textSize + margin
}

func anyText(texts []string) bool {
	for _, t := range texts {
		if t != "" {
			return true
		}
	}
	return false
}

// LabelPlacement is a set of labels anchored along one band.
type LabelPlacement struct {
	Texts       []string
	Anchors     []Point
	Boxes       []Rect
	Colors      []color.NRGBA
	Orientation Orientation
	// Top places the labels above their anchors (the header band).
	Top       bool
	ItemWidth float64
	TextSize  float64
}

// LabelStrategy draws a band of labels.
type LabelStrategy interface {
	DrawLabels(s Surface, lp LabelPlacement)
}

// RotatingLabels draws vertical labels rotated by 90 degrees and horizontal
// labels centred on their anchor, shortened when wider than an item.
type RotatingLabels struct{}

func (RotatingLabels) DrawLabels(s Surface, lp LabelPlacement) {
	if lp.Orientation == OrientationNone {
		return
	}
	o := lp.Orientation.normalize()
	for i, at := range lp.Anchors {
		if i >= len(lp.Texts) || lp.Texts[i] == "" {
			continue
		}
		text := lp.Texts[i]
		bounds := lp.Boxes[i]
		style := TextStyle{Size: lp.TextSize, Color: lp.Colors[i]}

		withSaved(s, func() {
			if o == OrientationVertical {
				y := at.Y
				if lp.Top {
					y -= bounds.Width()
				}
				s.Rotate(90)
				s.Translate(y, -at.X+bounds.Height()/2)
			} else {
				text, bounds = fitText(s, text, bounds, lp.ItemWidth, lp.TextSize)
				y := at.Y
				if lp.Top {
					y -= bounds.Height()
				}
				s.Translate(at.X-bounds.Width()/2, y)
			}
			s.DrawText(text, Point{}, style)
		})
	}
}

// fitText shortens text to three and then one character until it fits
// width.
func fitText(m Measurer, text string, bounds Rect, width, size float64) (string, Rect) {
	for _, n := range []int{3, 1} {
		if bounds.Width() <= width {
			break
		}
		r := []rune(text)
		if len(r) > n {
			r = r[:n]
		}
		text = string(r)
		bounds = m.MeasureText(text, size)
	}
	return text, bounds
}
