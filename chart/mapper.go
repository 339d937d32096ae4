package chart

import "fmt"

// Mapper maps entry indices and values to surface positions.
type Mapper struct {
	Margin   float64
	MinValue float64
	MaxValue float64
	// Progress blends every point between the origin line (0) and its
	// data driven position (1).
	Progress float64
	// OriginX shifts all points right, e.g. past a left Y axis.
	OriginX float64
}

// ValueRange is MaxValue - MinValue.
func (m Mapper) ValueRange() float64 {
	return m.MaxValue - m.MinValue
}

// Validate rejects value ranges that would make Origin and Point divide by
// zero or produce non-finite coordinates.
func (m Mapper) Validate() error {
	if !finite(m.MinValue, m.MaxValue, m.Margin, m.OriginX) {
		return fmt.Errorf("%w: non-finite mapper parameters", ErrInvalidConfiguration)
	}
	if m.ValueRange() <= 0 {
		return fmt.Errorf("%w: value range [%v, %v] is empty",
			ErrInvalidConfiguration, m.MinValue, m.MaxValue)
	}
	return nil
}

// ItemSize splits totalWidth into count evenly spaced slots separated by
// the margin, and returns the height left after the margin and the footer
// and header bands.
func (m Mapper) ItemSize(totalWidth, totalHeight, footer, header float64, count int) (Size, error) {
	if count <= 0 {
		return Size{}, fmt.Errorf("%w: no entries", ErrInvalidConfiguration)
	}
	if totalWidth <= 0 || totalHeight <= 0 {
		return Size{}, fmt.Errorf("%w: viewport %vx%v",
			ErrInvalidConfiguration, totalWidth, totalHeight)
	}
	w := (totalWidth - float64(count+1)*m.Margin) / float64(count)
	h := totalHeight - m.Margin - footer - header
	return Size{Width: w, Height: h}, nil
}

// Origin is the Y of the value zero line. A chart with no positive values
// hangs from the header line, one with only positive values rises from the
// bottom, and a mixed one places the line proportionally.
func (m Mapper) Origin(itemHeight, header float64) float64 {
	if m.MaxValue <= 0 {
		return header
	}
	if m.MinValue > 0 {
		return header + itemHeight
	}
	return header + m.MaxValue/m.ValueRange()*itemHeight
}

// X is the horizontal centre of slot i.
func (m Mapper) X(i int, item Size) float64 {
	return m.OriginX + m.Margin + item.Width/2 + float64(i)*(item.Width+m.Margin)
}

// Point maps value at index i.
func (m Mapper) Point(value float64, i int, item Size, origin, header float64) Point {
	p := clamp01(m.Progress)
	y := header + (1-p)*(origin-header) + p*((m.MaxValue-value)/m.ValueRange()*item.Height)
	return Point{X: m.X(i, item), Y: y}
}

// Points maps values in order; the result has one point per value.
func (m Mapper) Points(values []float64, item Size, origin, header float64) []Point {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = m.Point(v, i, item, origin, header)
	}
	return pts
}

// LabelXs returns the horizontal anchors of count footer labels.
func (m Mapper) LabelXs(count int, item Size) []float64 {
	xs := make([]float64, count)
	for i := range xs {
		xs[i] = m.X(i, item)
	}
	return xs
}
