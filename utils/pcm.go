// SPDX-License-Identifier: EPL-2.0

package utils

// IntToFloat32 scales a signed PCM sample of the given bit depth to
// [-1, 1).
func IntToFloat32(v int32, bitDepth int) float32 {
	return float32(v) / float32(int64(1)<<(bitDepth-1))
}

// Float32ToInt clamps x to [-1, 1] and scales it to a signed sample of the
// given bit depth. The positive peak maps to the largest representable
// value so that 1.0 does not overflow.
func Float32ToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	peak := float64(int64(1)<<(bitDepth-1) - 1)
	return int(float64(x) * peak)
}
