// SPDX-License-Identifier: EPL-2.0

// Package reverse plays 16-bit stereo PCM backwards.
//
// Reverser walks the frames of a buffer from last to first and wraps
// around, so a looped track can be reversed into an endlessly repeating
// stream. Write emits one plain reversed pass.
//
// Fader adds a fade-in to the start of the reversed stream. The gain follows
// an exponential curve (linear in decibels) from exp(SilentLog) up to just
// below unity, applied in 16.16 fixed point with uniform dither added before
// truncation:
//
//	f := reverse.Fader{
//	    Samples: 3 * 44100,
//	    Noise:   reverse.NewUniformNoise(rand.New(rand.NewPCG(1, 2))),
//	}
//	n, err := f.Write(w, track.Looped())
//
// Frames are handled whole and never split.
package reverse
