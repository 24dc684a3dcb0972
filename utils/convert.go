// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample format conversions shared by the codec
// and the PCM adapters.
package utils

import "math"

// Float32ToInt16 converts a normalized sample to 16-bit PCM. It is the
// inverse of Int16ToFloat32; 1.0 saturates to math.MaxInt16.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return ClampInt16(int64(x * 32768.0))
}

// Int16ToFloat32 maps 16-bit PCM onto [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// ClampInt16 saturates v to the int16 range.
func ClampInt16(v int64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// ScaleToInt16 converts an integer sample of the given bit depth to
// 16-bit, keeping the most significant bits.
func ScaleToInt16(v int, bitDepth int) int16 {
	switch {
	case bitDepth <= 0 || bitDepth == 16:
		return ClampInt16(int64(v))
	case bitDepth < 16:
		return ClampInt16(int64(v) << (16 - bitDepth))
	default:
		return ClampInt16(int64(v) >> (bitDepth - 16))
	}
}
