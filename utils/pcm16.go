// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// Float32ToInt16 scales x in [-1, 1] to a 16-bit sample, rounding to nearest.
// It is the exact inverse of Int16ToFloat32; values outside the range are
// clamped.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * 32768.0)
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Int16ToFloat32 maps a 16-bit sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// PutPCM16 encodes src as little-endian 16-bit samples into dst, which must
// hold at least 2*len(src) bytes. It returns the number of bytes written.
func PutPCM16(dst []byte, src []float32) int {
	for i, x := range src {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(Float32ToInt16(x)))
	}
	return 2 * len(src)
}
