// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer 3 audio via github.com/hajimehoshi/go-mp3.
//
// The decoder always yields stereo, since go-mp3 upmixes mono streams.
// Samples are interleaved float32 in [-1.0, 1.0].
package mp3
