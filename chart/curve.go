package chart

import "fmt"

// LineMode selects how consecutive points are joined.
type LineMode int

const (
	LineSpline LineMode = iota
	LineStraight
	LineNone
)

// controlFactor scales the item width into the horizontal offset of spline
// control points.
const controlFactor = 0.8

// PathOpKind is the kind of one path segment.
type PathOpKind int

const (
	MoveTo PathOpKind = iota
	LineTo
	CubicTo
	Close
)

// PathOp is one path segment. MoveTo and LineTo use Points[0]; CubicTo
// uses the two control points followed by the end point.
type PathOp struct {
	Kind   PathOpKind
	Points [3]Point
}

// End is the point the segment finishes on. Close has none.
func (op PathOp) End() Point {
	if op.Kind == CubicTo {
		return op.Points[2]
	}
	return op.Points[0]
}

// Path is an ordered list of segments.
type Path struct {
	Ops []PathOp
}

func (p *Path) MoveTo(pt Point) { p.Ops = append(p.Ops, PathOp{Kind: MoveTo, Points: [3]Point{pt}}) }
func (p *Path) LineTo(pt Point) { p.Ops = append(p.Ops, PathOp{Kind: LineTo, Points: [3]Point{pt}}) }
func (p *Path) Close()          { p.Ops = append(p.Ops, PathOp{Kind: Close}) }

func (p *Path) CubicTo(c1, c2, pt Point) {
	p.Ops = append(p.Ops, PathOp{Kind: CubicTo, Points: [3]Point{c1, c2, pt}})
}

// Closed reports whether the path ends with Close.
func (p Path) Closed() bool {
	return len(p.Ops) > 0 && p.Ops[len(p.Ops)-1].Kind == Close
}

// Vertices returns the end points of all segments in order.
func (p Path) Vertices() []Point {
	var vs []Point
	for _, op := range p.Ops {
		if op.Kind != Close {
			vs = append(vs, op.End())
		}
	}
	return vs
}

// Stroke builds the line through points. It reports false when there is
// nothing to draw: LineNone or fewer than two points.
func Stroke(points []Point, mode LineMode, itemWidth float64) (Path, bool) {
	if mode == LineNone || len(points) < 2 {
		return Path{}, false
	}
	var p Path
	p.MoveTo(points[0])
	forward(&p, points, mode, itemWidth)
	return p, true
}

// AreaFill builds the closed region between the line through points and
// the origin line.
func AreaFill(points []Point, mode LineMode, itemWidth, origin float64) (Path, bool) {
	if len(points) < 2 {
		return Path{}, false
	}
	first, last := points[0], points[len(points)-1]

	var p Path
	p.MoveTo(Point{first.X, origin})
	p.LineTo(first)
	forward(&p, points, fillMode(mode), itemWidth)
	p.LineTo(Point{last.X, origin})
	p.Close()
	return p, true
}

// BandFill builds the closed region between two index aligned series. The
// boundary runs from the start of to up to from, along from, down a vertical
// cap at the last index, back along to in reverse, and closes on its start.
func BandFill(from, to []Point, mode LineMode, itemWidth float64) (Path, bool, error) {
	if len(from) != len(to) {
		return Path{}, false, fmt.Errorf("%w: band from %d points, to %d points",
			ErrMismatchedSeries, len(from), len(to))
	}
	if len(from) < 2 {
		return Path{}, false, nil
	}
	mode = fillMode(mode)
	last := len(from) - 1

	var p Path
	p.MoveTo(Point{from[0].X, to[0].Y})
	p.LineTo(from[0])
	forward(&p, from, mode, itemWidth)
	p.LineTo(Point{from[last].X, to[last].Y})
	reverse(&p, to, mode, itemWidth)
	p.Close()
	return p, true, nil
}

// forward appends the segments from points[0] to the last point. The
// current point must already be points[0].
func forward(p *Path, points []Point, mode LineMode, itemWidth float64) {
	off := Point{X: itemWidth * controlFactor}
	for i := 1; i < len(points); i++ {
		if mode == LineSpline {
			p.CubicTo(points[i-1].Add(off), points[i].Sub(off), points[i])
		} else {
			p.LineTo(points[i])
		}
	}
}

// reverse appends the segments from the last point back to points[0] with
// mirrored control points. The current point must already be the last one.
func reverse(p *Path, points []Point, mode LineMode, itemWidth float64) {
	off := Point{X: itemWidth * controlFactor}
	for i := len(points) - 1; i > 0; i-- {
		if mode == LineSpline {
			p.CubicTo(points[i].Sub(off), points[i-1].Add(off), points[i-1])
		} else {
			p.LineTo(points[i-1])
		}
	}
}

// fillMode is the mode used for fill boundaries; a fill still needs edges
// when no line is drawn.
func fillMode(mode LineMode) LineMode {
	if mode == LineNone {
		return LineStraight
	}
	return mode
}
