package fractal

import (
	"fmt"
	"math"
)

const (
	fullTurn  = 2 * math.Pi
	sweepTurn = 8 * math.Pi
)

// WrapMode selects how cyclic animation state is folded back into range.
type WrapMode string

const (
	// WrapSnap resets a value that leaves [0, period) to the opposite
	// boundary: 0 on overflow, period on underflow.
	WrapSnap WrapMode = "snap"
	// WrapModulo folds the value with a true modulo.
	WrapModulo WrapMode = "modulo"
)

// ParseWrapMode converts a config value into a WrapMode. An empty string
// selects WrapSnap.
func ParseWrapMode(s string) (WrapMode, error) {
	switch WrapMode(s) {
	case "", WrapSnap:
		return WrapSnap, nil
	case WrapModulo:
		return WrapModulo, nil
	}
	return "", fmt.Errorf("unknown wrap mode %q", s)
}

// Wrap folds v into the cycle [0, period).
func (m WrapMode) Wrap(v, period float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	if m == WrapModulo {
		if math.IsInf(v, 0) {
			return 0
		}
		v = math.Mod(v, period)
		if v < 0 {
			v += period
		}
		if v >= period {
			v = 0
		}
		return v
	}

	if v >= period {
		return 0
	} else if v < 0 {
		return period
	}
	return v
}

func clampDt(dt float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return 0
	}
	return dt
}

// Advance moves the spin and the per-step turn forward by dt seconds.
func (c *Chain) Advance(dt float64) {
	dt = clampDt(dt)
	p := &c.Params
	if p.Spin {
		p.WholeRotationAngle += p.WholeRotationSpeed * dt
	}
	if p.IncrementAngleAdd {
		p.AngleAdd += p.ArmRotationSpeed * dt
	}

	p.WholeRotationAngle = c.Wrap.Wrap(p.WholeRotationAngle, fullTurn)
	p.AngleAdd = c.Wrap.Wrap(p.AngleAdd, fullTurn)
}

// Advance widens or narrows the sweep by dt seconds. The sweep cycles over
// four full turns.
func (t *Tree) Advance(dt float64) {
	dt = clampDt(dt)
	p := &t.Params
	if p.Sweep {
		p.SweepAngle += p.SweepSpeed * dt
	}

	p.SweepAngle = t.Wrap.Wrap(p.SweepAngle, sweepTurn)
}
