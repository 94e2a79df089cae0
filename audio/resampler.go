// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/msupcm/utils"
)

// maxEmptyReads bounds how many (0, nil) reads are tolerated from a source
// before giving up.
const maxEmptyReads = 8

// Resampler streams from src at dstRate using Catmull-Rom interpolation.
// Works on interleaved samples and preserves the channel count. When the
// rates match it passes samples through untouched. When downsampling, a
// one-pole low-pass is applied to the input to soften aliasing.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames advanced per output frame

	// window holds source frames i-1, i, i+1, i+2 around the read position.
	// real marks which of them came from the source rather than edge padding.
	window [4][]float32
	real   [4]bool
	primed bool
	frac   float64 // position between window[1] and window[2], in [0, 1)

	in       []float32 // raw samples read from src
	inPos    int
	inLen    int
	srcEOF   bool
	finished bool

	lowpass []float32
	alpha   float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, bufSize),
		lowpass:  make([]float32, channels),
	}
	if step > 1.0 {
		r.alpha = 0.5
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// pull copies the next unfiltered source frame into dst. It reports false
// once the source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	empty := 0
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos = 0
		r.inLen = n - n%r.channels

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("reading resampler source: %w", err)
		}

		if r.inLen == 0 && !r.srcEOF {
			empty++
			if empty >= maxEmptyReads {
				return false, ErrNoProgress
			}
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	return true, nil
}

// smooth runs the one-pole low-pass over frame in place. It is a no-op when
// upsampling.
func (r *Resampler) smooth(frame []float32) {
	if r.alpha == 0 {
		return
	}
	for c := range frame {
		frame[c] = r.alpha*frame[c] + (1-r.alpha)*r.lowpass[c]
		r.lowpass[c] = frame[c]
	}
}

// fill loads window[i], padding with window[i-1] when the source has run dry.
func (r *Resampler) fill(i int) error {
	ok, err := r.pull(r.window[i])
	if err != nil {
		return err
	}
	r.real[i] = ok
	if !ok {
		copy(r.window[i], r.window[i-1])
		return nil
	}
	r.smooth(r.window[i])
	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.pull(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		r.finished = true
		return nil
	}

	// Seed the filter with the raw first frame so the output does not ramp
	// up from zero.
	copy(r.lowpass, r.window[1])
	r.smooth(r.window[1])

	copy(r.window[0], r.window[1])
	r.real[0], r.real[1] = false, true

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	r.primed = true
	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	r.window[0], r.window[1], r.window[2], r.window[3] = r.window[1], r.window[2], r.window[3], r.window[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]
	return r.fill(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.step == 1.0 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed && !r.finished {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames && !r.finished {
		for r.frac >= 1.0 {
			r.frac -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// window[1] is the last real frame, nothing left to interpolate towards.
		if !r.real[2] {
			r.finished = true
			break
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.frac += r.step
	}

	if r.finished {
		return written * r.channels, io.EOF
	}
	return written * r.channels, nil
}
