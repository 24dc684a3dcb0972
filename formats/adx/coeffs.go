// SPDX-License-Identifier: EPL-2.0

package adx

import "math"

// DefaultHighpassFrequency is the cutoff written by the encoder.
const DefaultHighpassFrequency uint16 = 500

// fixed-point denominator of the predictor coefficients
const coeffShift = 12

// Coefficients are the two 12-bit fixed-point predictor taps.
type Coefficients struct {
	C1 int32
	C2 int32
}

// GenerateCoefficients derives the predictor taps for a stream. A zero
// sample rate yields zero taps.
func GenerateCoefficients(sampleRate uint32, highpassFrequency uint16) Coefficients {
	if sampleRate == 0 {
		return Coefficients{}
	}

	h := float64(highpassFrequency) / float64(sampleRate)
	a := math.Sqrt2 - math.Cos(2*math.Pi*h)
	b := math.Sqrt2 - 1
	c := (a - math.Sqrt((a+b)*(a-b))) / b

	return Coefficients{
		C1: int32(math.Round(2 * c * (1 << coeffShift))),
		C2: int32(math.Round(-c * c * (1 << coeffShift))),
	}
}

// Predict returns the next sample expected after prev and prevPrev.
func (c Coefficients) Predict(prev, prevPrev int32) int32 {
	return (c.C1*prev + c.C2*prevPrev) >> coeffShift
}
