package util

import (
	"github.com/fogleman/ease"
)

// RampLut generates a look-up table of length entries rising from 0 to 1
// along an ease-in-out curve.
func RampLut(length int) []float64 {
	if length <= 0 {
		return nil
	}

	lut := make([]float64, length)
	if length == 1 {
		return lut
	}

	increment := 1.0 / float64(length-1)
	for i := range lut {
		lut[i] = ease.InOutQuad(float64(i) * increment)
	}
	lut[length-1] = 1
	return lut
}
