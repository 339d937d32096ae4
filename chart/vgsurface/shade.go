package vgsurface

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/susji/lilchart/chart"
)

// vg canvases paint with a single colour, so shaders are flattened to the
// colour they average to. Gradients blend their stops in Lab space.

func resolve(p chart.Paint) color.NRGBA {
	if p.Shader == nil {
		return p.Color
	}
	return flatten(p.Shader)
}

func flatten(s chart.Shader) color.NRGBA {
	switch v := s.(type) {
	case chart.LinearGradient:
		return average(v.Colors)
	case chart.ComposedShader:
		dst, src := flatten(v.Dst), flatten(v.Src)
		da, sa := float64(dst.A)/255, float64(src.A)/255
		switch v.Mode {
		case chart.BlendSrcOut:
			return withAlpha(src, sa*(1-da))
		default:
			panic(fmt.Sprintf("This is a bug: blend mode == %d", v.Mode))
		}
	case nil:
		return color.NRGBA{}
	}
	panic("This is a bug: unknown shader")
}

func average(stops []color.NRGBA) color.NRGBA {
	switch len(stops) {
	case 0:
		return color.NRGBA{}
	case 1:
		return stops[0]
	}
	c := toColorful(stops[0])
	alpha := float64(stops[0].A)
	for i := 1; i < len(stops); i++ {
		// Running mean: the i-th stop weighs 1/(i+1).
		c = c.BlendLab(toColorful(stops[i]), 1/float64(i+1))
		alpha += float64(stops[i].A)
	}
	return fromColorful(c, alpha/float64(len(stops))/255)
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(255 * clamp(alpha)))}
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(255 * clamp(alpha)))
	return c
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
