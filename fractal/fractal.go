// Package fractal generates animated line fractals. A Fractal is advanced by
// elapsed time once per frame and then asked for the segments to draw.
package fractal

import "fmt"

// Kind names a fractal variant.
type Kind string

const (
	KindChain Kind = "chain"
	KindTree  Kind = "tree"
)

// Kinds lists every variant in cycling order.
var Kinds = []Kind{KindChain, KindTree}

// ParseKind converts a variant name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindChain, KindTree:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown fractal variant %q", s)
}

// A Fractal is one of the closed set of variants, *Chain or *Tree. Per frame
// the host calls Recentre, Advance and then Segments. Segments never mutates
// the stored parameters.
type Fractal interface {
	Kind() Kind
	Recentre(v Viewport)
	Advance(dt float64)
	Segments() []Segment
	sealed()
}

// New creates the starting configuration for kind.
func New(kind Kind, wrap WrapMode) (Fractal, error) {
	switch kind {
	case KindChain:
		return NewChain(DefaultChainParams(), wrap), nil
	case KindTree:
		return NewTree(DefaultTreeParams(), wrap), nil
	}
	return nil, fmt.Errorf("unknown fractal variant %q", kind)
}
