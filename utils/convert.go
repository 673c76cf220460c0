// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 scales a normalized sample to 16-bit PCM, clamping to [-1, 1].
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 on both sides keeps the scale symmetric
	return int16(x * math.MaxInt16)
}

// ClampInt16 saturates v into the int16 range.
func ClampInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// Int32ToInt16 narrows a left-justified 32-bit I2S sample to 16 bits with an
// arithmetic shift.
func Int32ToInt16(v int32) int16 {
	return int16(v >> 16)
}
