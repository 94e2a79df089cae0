// SPDX-License-Identifier: EPL-2.0

package reverse

import (
	"io"
	"math"
	"math/rand/v2"
)

const (
	// SilentLog is the natural logarithm of the quietest gain the fade
	// starts from.
	SilentLog = -6.0

	// GainScale is fixed point unity gain.
	GainScale = 1 << 16

	// DitherAmplitude bounds the dither added before truncation, half an
	// output bit in GainScale units.
	DitherAmplitude = 1 << 15
)

// Gain returns the fixed point gain for a frame with rem frames left in a
// fade of total frames. rem runs from total down to 1, so the result rises
// from exp(SilentLog)*GainScale towards, but never reaches, GainScale.
func Gain(rem, total int) int32 {
	return int32(math.Exp(SilentLog*float64(rem)/float64(total)) * GainScale)
}

// Noise yields dither values in [-DitherAmplitude, DitherAmplitude].
type Noise interface {
	Sample() int32
}

type uniformNoise struct {
	r *rand.Rand
}

// NewUniformNoise draws uniformly distributed dither from r, bounds
// inclusive.
func NewUniformNoise(r *rand.Rand) Noise {
	return uniformNoise{r: r}
}

// NewNoise returns uniform dither backed by a freshly seeded generator.
func NewNoise() Noise {
	return NewUniformNoise(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func (n uniformNoise) Sample() int32 {
	return int32(n.r.IntN(2*DitherAmplitude+1)) - DitherAmplitude
}

// Fader writes a reversed buffer whose first Samples frames fade in from
// near silence.
type Fader struct {
	// Samples is the fade length in frames.
	Samples int

	// Noise supplies dither for the faded frames. A fresh NewNoise is used
	// when nil.
	Noise Noise

	// LeadIn emits the fade ahead of one complete pass of the buffer
	// instead of over its first frames. Output is then Samples frames
	// longer than the input, and the loop point Samples lands exactly on
	// the start of a full repetition.
	LeadIn bool

	// TrueStereo decodes the right channel from its own half of the frame
	// during the fade. By default both channels are taken from the left
	// sample, which folds the fade to mono.
	TrueStereo bool
}

// Write emits the faded reversal of buf to w and returns the number of
// frames written. Frames are drawn cyclically, so a fade longer than buf
// wraps around it. Without LeadIn exactly len(buf)/FrameSize frames are
// written.
func (f Fader) Write(w io.Writer, buf []byte) (int, error) {
	rev := NewReverser(buf)
	if rev.Len() == 0 {
		return 0, nil
	}

	total := rev.Len()
	if f.LeadIn {
		total += f.Samples
	}

	noise := f.Noise
	if noise == nil && f.Samples > 0 {
		noise = NewNoise()
	}

	fw := newFrameWriter(w)
	emitted := 0

	for rem := f.Samples; rem > 0 && emitted < total; rem-- {
		fw.put(f.fade(rev.Next(), Gain(rem, f.Samples), noise))
		emitted++
	}

	for ; emitted < total; emitted++ {
		fw.put(rev.Next())
	}

	if err := fw.flush(); err != nil {
		return 0, err
	}
	return emitted, nil
}

func (f Fader) fade(fr Frame, gain int32, noise Noise) Frame {
	left := fr.Left()
	right := fr.Left()
	if f.TrueStereo {
		right = fr.Right()
	}

	return NewFrame(
		applyGain(left, gain, noise.Sample()),
		applyGain(right, gain, noise.Sample()),
	)
}

// applyGain scales s by gain/GainScale, truncating towards negative
// infinity after adding dither.
func applyGain(s int16, gain, dither int32) int16 {
	return int16((int32(s)*gain + dither) >> 16)
}
