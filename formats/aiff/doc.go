// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files through github.com/go-audio/aiff.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// Samples come out as interleaved float32 in [-1.0, 1.0] at the file's own
// rate and channel count. Readers that cannot seek are buffered in memory.
package aiff
