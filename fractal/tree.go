package fractal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// TreeParams configures a branching-tree fractal. Every node fans out into
// Arms children spread evenly across SweepAngle.
type TreeParams struct {
	Origin       Point   `json:"origin" yaml:"-"`
	Depth        uint32  `json:"depth" yaml:"depth"`
	Angle        float64 `json:"angle" yaml:"angle"`
	Length       float64 `json:"length" yaml:"length"`
	SweepAngle   float64 `json:"sweepAngle" yaml:"sweepAngle"`
	LengthFactor float64 `json:"lengthFactor" yaml:"lengthFactor"`
	Arms         uint32  `json:"arms" yaml:"arms"`
	Stroke       Stroke  `json:"stroke" yaml:"stroke"`
	Centered     bool    `json:"centered" yaml:"centered"`
	Sweep        bool    `json:"sweep" yaml:"sweep"`
	SweepSpeed   float64 `json:"sweepSpeed" yaml:"sweepSpeed"`
}

// DefaultTreeParams returns the branching-tree starting configuration.
func DefaultTreeParams() TreeParams {
	return TreeParams{
		Origin:       DefaultViewport.Centre(),
		Depth:        8,
		Angle:        math.Pi * 3 / 2,
		Length:       190,
		SweepAngle:   math.Pi / 3,
		LengthFactor: 0.6,
		Arms:         3,
		Stroke:       Stroke{Width: 0.5, Colour: MustHex("#ffffff")},
		Centered:     true,
		Sweep:        true,
		SweepSpeed:   0.15,
	}
}

func (p TreeParams) finite() bool {
	return p.Origin.finite() && finite(p.Angle) && finite(p.Length) &&
		finite(p.SweepAngle) && finite(p.LengthFactor)
}

// fan returns the angular offset of each child from its parent's direction.
// A single arm continues straight on.
func (p TreeParams) fan() []float64 {
	offsets := make([]float64, p.Arms)
	if p.Arms == 1 {
		return offsets
	}
	for i := range offsets {
		offsets[i] = -p.SweepAngle/2 + p.SweepAngle*float64(i)/float64(p.Arms-1)
	}
	return offsets
}

// A Tree is the branching-tree fractal variant.
type Tree struct {
	Params TreeParams
	Wrap   WrapMode
}

// NewTree creates an instance of a Tree.
func NewTree(p TreeParams, wrap WrapMode) *Tree {
	t := new(Tree)
	t.Params = p
	t.Wrap = wrap
	return t
}

// Kind identifies the variant.
func (*Tree) Kind() Kind { return KindTree }

func (*Tree) sealed() {}

// Recentre moves the origin to the middle of the viewport, or a quarter of
// its height lower when the tree is not centered.
func (t *Tree) Recentre(v Viewport) {
	t.Params.Origin = v.Centre()
	if !t.Params.Centered {
		t.Params.Origin.Y += v.Height / 4
	}
}

// Segments walks the tree depth first, visiting children in ascending order.
// The root fan-out spends one level of depth, so a finite configuration
// yields Arms + Arms^2 + ... + Arms^(Depth-1) segments.
func (t *Tree) Segments() []Segment {
	p := t.Params
	if p.Arms == 0 || p.Depth <= 1 || !p.finite() {
		return nil
	}

	g := treeGrower{
		lengthFactor: p.LengthFactor,
		width:        p.Stroke.Width,
		fan:          p.fan(),
		shades:       p.Stroke.shades(int(p.Depth - 1)),
	}
	g.out = make([]Segment, 0, capacity(treeSize(p.Arms, p.Depth)))

	root := Branch{Origin: p.Origin, Angle: p.Angle, Length: p.Length, Depth: p.Depth - 1}
	g.fanOut(root, 0)
	return g.out
}

type treeGrower struct {
	lengthFactor float64
	width        float64
	fan          []float64
	shades       []colorful.Color
	out          []Segment
}

func (g *treeGrower) fanOut(parent Branch, level int) {
	for _, delta := range g.fan {
		g.grow(parent.Turn(delta), level)
	}
}

func (g *treeGrower) grow(b Branch, level int) {
	if b.Depth == 0 {
		return
	}

	start, end, next, ok := b.Step(g.lengthFactor, 0)
	if !end.finite() {
		return
	}
	g.out = append(g.out, Segment{Start: start, End: end, Width: g.width, Colour: g.shades[level]})
	if ok {
		g.fanOut(next, level+1)
	}
}

// treeSize is the segment count of a finite tree, saturating on overflow.
func treeSize(arms, depth uint32) uint64 {
	var total, level uint64 = 0, 1
	for k := uint32(1); k < depth; k++ {
		if level > math.MaxUint64/(uint64(arms)+1) {
			return math.MaxUint64
		}
		level *= uint64(arms)
		if total > math.MaxUint64-level {
			return math.MaxUint64
		}
		total += level
	}
	return total
}
