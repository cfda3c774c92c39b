package fractal

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a parameter lies outside its editable range.
var ErrOutOfRange = errors.New("parameter out of range")

type limit struct {
	name   string
	value  float64
	lo, hi float64
}

func checkLimits(limits []limit) error {
	for _, l := range limits {
		if !(l.value >= l.lo && l.value <= l.hi) {
			return fmt.Errorf("%w: %s = %v, want [%v, %v]", ErrOutOfRange, l.name, l.value, l.lo, l.hi)
		}
	}
	return nil
}

// Validate checks p against the ranges the control panel allows. Depth is
// capped at 200 since a chain grows linearly.
func (p ChainParams) Validate() error {
	return checkLimits([]limit{
		{"depth", float64(p.Depth), 1, 200},
		{"arms", float64(p.Arms), 1, 20},
		{"angle", p.Angle, 0, fullTurn},
		{"length", p.Length, 0, 800},
		{"angleAdd", p.AngleAdd, 0, fullTurn},
		{"lengthFactor", p.LengthFactor, 0.000001, 3},
		{"wholeRotationAngle", p.WholeRotationAngle, 0, fullTurn},
		{"armRotationSpeed", p.ArmRotationSpeed, 0, 5},
		{"wholeRotationSpeed", p.WholeRotationSpeed, -5, 5},
		{"stroke.width", p.Stroke.Width, 0, 10},
	})
}

// Validate checks p against the ranges the control panel allows. A tree
// holds up to Arms^(Depth-1) segments per level, so depth and arms stay small.
func (p TreeParams) Validate() error {
	return checkLimits([]limit{
		{"depth", float64(p.Depth), 1, 10},
		{"arms", float64(p.Arms), 1, 10},
		{"angle", p.Angle, 0, fullTurn},
		{"length", p.Length, 0, 300},
		{"sweepAngle", p.SweepAngle, 0, sweepTurn},
		{"lengthFactor", p.LengthFactor, 0.000001, 2},
		{"sweepSpeed", p.SweepSpeed, -1, 1},
		{"stroke.width", p.Stroke.Width, 0, 10},
	})
}

// Clone returns a copy of s that shares no colour with it.
func (s Stroke) Clone() Stroke {
	if s.Tail != nil {
		tail := *s.Tail
		s.Tail = &tail
	}
	return s
}

