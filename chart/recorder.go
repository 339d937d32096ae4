package chart

import (
	"fmt"
	"image/color"
)

// Op names a recorded draw call.
type Op int

const (
	OpStrokePath Op = iota
	OpFillPath
	OpDrawPoint
	OpDrawRect
	OpDrawRoundRect
	OpDrawLine
	OpDrawText
	OpSave
	OpRestore
	OpTranslate
	OpRotate
)

var opNames = [...]string{
	OpStrokePath:    "stroke_path",
	OpFillPath:      "fill_path",
	OpDrawPoint:     "draw_point",
	OpDrawRect:      "draw_rect",
	OpDrawRoundRect: "draw_round_rect",
	OpDrawLine:      "draw_line",
	OpDrawText:      "draw_text",
	OpSave:          "save",
	OpRestore:       "restore",
	OpTranslate:     "translate",
	OpRotate:        "rotate",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// DrawCall is one recorded Surface call. Only the fields of its Op are set.
type DrawCall struct {
	Op     Op
	Path   Path
	Paint  Paint
	Points []Point
	Rect   Rect
	Radius float64
	Text   string
	Style  TextStyle
	Color  color.NRGBA
	Size   float64
	Mode   PointMode
	// Value is the rotation in degrees.
	Value float64
}

// Recorder is a Surface that records every call instead of drawing. Text is
// measured with Measurer, or MonoMeasurer when nil.
type Recorder struct {
	Measurer Measurer
	Calls    []DrawCall
}

func (r *Recorder) MeasureText(text string, size float64) Rect {
	if r.Measurer == nil {
		return MonoMeasurer{}.MeasureText(text, size)
	}
	return r.Measurer.MeasureText(text, size)
}

func (r *Recorder) add(c DrawCall) { r.Calls = append(r.Calls, c) }

func (r *Recorder) StrokePath(p Path, paint Paint) {
	r.add(DrawCall{Op: OpStrokePath, Path: p, Paint: paint})
}

func (r *Recorder) FillPath(p Path, paint Paint) {
	r.add(DrawCall{Op: OpFillPath, Path: p, Paint: paint})
}

func (r *Recorder) DrawPoint(at Point, c color.NRGBA, size float64, mode PointMode) {
	r.add(DrawCall{Op: OpDrawPoint, Points: []Point{at}, Color: c, Size: size, Mode: mode})
}

func (r *Recorder) DrawRect(rect Rect, paint Paint) {
	r.add(DrawCall{Op: OpDrawRect, Rect: rect, Paint: paint})
}

func (r *Recorder) DrawRoundRect(rect Rect, radius float64, paint Paint) {
	r.add(DrawCall{Op: OpDrawRoundRect, Rect: rect, Radius: radius, Paint: paint})
}

func (r *Recorder) DrawLine(a, b Point, paint Paint) {
	r.add(DrawCall{Op: OpDrawLine, Points: []Point{a, b}, Paint: paint})
}

func (r *Recorder) DrawText(text string, at Point, style TextStyle) {
	r.add(DrawCall{Op: OpDrawText, Text: text, Points: []Point{at}, Style: style})
}

func (r *Recorder) CreateLinearGradient(start, end Point, colors []color.NRGBA, mode TileMode) Shader {
	return LinearGradient{Start: start, End: end, Colors: colors, Mode: mode}
}

func (r *Recorder) CreateComposedShader(dst, src Shader, mode BlendMode) Shader {
	return ComposedShader{Dst: dst, Src: src, Mode: mode}
}

func (r *Recorder) Save()    { r.add(DrawCall{Op: OpSave}) }
func (r *Recorder) Restore() { r.add(DrawCall{Op: OpRestore}) }

func (r *Recorder) Translate(dx, dy float64) {
	r.add(DrawCall{Op: OpTranslate, Points: []Point{{dx, dy}}})
}

func (r *Recorder) Rotate(degrees float64) {
	r.add(DrawCall{Op: OpRotate, Value: degrees})
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}
