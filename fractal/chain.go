package fractal

import "math"

// ChainParams configures a single-chain fractal: each arm is one connected
// polyline that turns by AngleAdd and scales by LengthFactor at every step.
type ChainParams struct {
	Origin             Point   `json:"origin" yaml:"-"`
	Depth              uint32  `json:"depth" yaml:"depth"`
	Angle              float64 `json:"angle" yaml:"angle"`
	Length             float64 `json:"length" yaml:"length"`
	AngleAdd           float64 `json:"angleAdd" yaml:"angleAdd"`
	LengthFactor       float64 `json:"lengthFactor" yaml:"lengthFactor"`
	Arms               uint32  `json:"arms" yaml:"arms"`
	Stroke             Stroke  `json:"stroke" yaml:"stroke"`
	WholeRotationAngle float64 `json:"wholeRotationAngle" yaml:"wholeRotationAngle"`
	ArmRotationSpeed   float64 `json:"armRotationSpeed" yaml:"armRotationSpeed"`
	WholeRotationSpeed float64 `json:"wholeRotationSpeed" yaml:"wholeRotationSpeed"`
	Spin               bool    `json:"spin" yaml:"spin"`
	IncrementAngleAdd  bool    `json:"incrementAngleAdd" yaml:"incrementAngleAdd"`
}

// DefaultChainParams returns the single-chain starting configuration.
func DefaultChainParams() ChainParams {
	return ChainParams{
		Origin:             DefaultViewport.Centre(),
		Depth:              35,
		Angle:              0,
		Length:             220,
		AngleAdd:           math.Pi / 3,
		LengthFactor:       1.01,
		Arms:               3,
		Stroke:             Stroke{Width: 0.5, Colour: MustHex("#ff0000")},
		ArmRotationSpeed:   0.05,
		WholeRotationSpeed: 0.25,
		Spin:               true,
		IncrementAngleAdd:  true,
	}
}

func (p ChainParams) finite() bool {
	return p.Origin.finite() && finite(p.Angle) && finite(p.Length) &&
		finite(p.AngleAdd) && finite(p.LengthFactor) && finite(p.WholeRotationAngle)
}

// A Chain is the single-chain fractal variant.
type Chain struct {
	Params ChainParams
	Wrap   WrapMode
}

// NewChain creates an instance of a Chain.
func NewChain(p ChainParams, wrap WrapMode) *Chain {
	c := new(Chain)
	c.Params = p
	c.Wrap = wrap
	return c
}

// Kind identifies the variant.
func (*Chain) Kind() Kind { return KindChain }

func (*Chain) sealed() {}

// Recentre moves the origin to the middle of the viewport.
func (c *Chain) Recentre(v Viewport) {
	c.Params.Origin = v.Centre()
}

// Segments generates the arms in order, each walked from the origin outwards.
// A finite configuration yields exactly Arms*Depth segments.
func (c *Chain) Segments() []Segment {
	p := c.Params
	if p.Arms == 0 || p.Depth == 0 || !p.finite() {
		return nil
	}

	shades := p.Stroke.shades(int(p.Depth))
	out := make([]Segment, 0, capacity(uint64(p.Arms)*uint64(p.Depth)))
	spacing := fullTurn / float64(p.Arms)
	for i := uint32(1); i <= p.Arms; i++ {
		b := Branch{
			Origin: p.Origin,
			Angle:  p.Angle + p.WholeRotationAngle + spacing*float64(i),
			Length: p.Length,
			Depth:  p.Depth,
		}

		for level := 0; ; level++ {
			start, end, next, ok := b.Step(p.LengthFactor, p.AngleAdd)
			if !end.finite() {
				break
			}
			out = append(out, Segment{Start: start, End: end, Width: p.Stroke.Width, Colour: shades[level]})
			if !ok {
				break
			}
			b = next
		}
	}

	return out
}

// capacity bounds slice preallocation for very deep configurations.
func capacity(n uint64) int {
	const maxPrealloc = 1 << 16
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
