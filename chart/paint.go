package chart

import "image/color"

// TileMode decides how a gradient continues outside its start and end.
// Charts only clamp.
type TileMode int

const (
	TileClamp TileMode = iota
)

// BlendMode combines two shaders. Charts only cut the source out of the
// destination.
type BlendMode int

const (
	BlendSrcOut BlendMode = iota
)

// Shader is a paint source created by a Surface. The values defined in this
// package are plain descriptions; surfaces decide how faithfully they
// render them.
type Shader interface {
	shader()
}

// LinearGradient spreads Colors evenly between Start and End.
type LinearGradient struct {
	Start, End Point
	Colors     []color.NRGBA
	Mode       TileMode
}

func (LinearGradient) shader() {}

// ComposedShader blends Src over Dst with Mode.
type ComposedShader struct {
	Dst, Src Shader
	Mode     BlendMode
}

func (ComposedShader) shader() {}

// Paint is an immutable style value handed to each draw call. When Shader is
// set it takes precedence over Color.
type Paint struct {
	Color  color.NRGBA
	Shader Shader
	Width  float64
}

// PointMode is the glyph used for data points.
type PointMode int

const (
	PointCircle PointMode = iota
	PointSquare
	PointNone
)

// TextAlign anchors text horizontally around its position.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextStyle describes a DrawText call. The position is the baseline anchor.
type TextStyle struct {
	Size  float64
	Color color.NRGBA
	Align TextAlign
}
