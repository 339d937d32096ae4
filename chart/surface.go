package chart

import "image/color"

// Measurer reports the bounds of text drawn at the given font size.
type Measurer interface {
	MeasureText(text string, size float64) Rect
}

// Surface is the drawing capability the engine renders onto. Coordinates
// are in surface units with the origin at the top left and Y growing
// downwards.
type Surface interface {
	Measurer

	StrokePath(p Path, paint Paint)
	FillPath(p Path, paint Paint)
	DrawPoint(at Point, c color.NRGBA, size float64, mode PointMode)
	DrawRect(r Rect, paint Paint)
	DrawRoundRect(r Rect, radius float64, paint Paint)
	DrawLine(a, b Point, paint Paint)
	DrawText(text string, at Point, style TextStyle)

	CreateLinearGradient(start, end Point, colors []color.NRGBA, mode TileMode) Shader
	CreateComposedShader(dst, src Shader, mode BlendMode) Shader

	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(degrees float64)
}

// withSaved runs fn between a Save and its matching Restore.
func withSaved(s Surface, fn func()) {
	s.Save()
	defer s.Restore()
	fn()
}
