package fractal

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/linefractal/util"
)

// shades returns one colour per depth level.
func (s Stroke) shades(levels int) []colorful.Color {
	if levels <= 0 {
		return nil
	}

	out := make([]colorful.Color, levels)
	if s.Tail == nil || levels == 1 {
		for i := range out {
			out[i] = s.Colour.Color
		}
		return out
	}

	for i, t := range util.RampLut(levels) {
		out[i] = s.Colour.BlendHcl(s.Tail.Color, t).Clamped()
	}
	return out
}
