// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer reshapes any channel layout to interleaved stereo. Mono is
// copied to both sides, stereo passes through, and wider layouts average
// even channels into the left side and odd channels into the right.
type StereoMixer struct {
	src Source
	tmp []float32
}

// NewStereoMixer wraps src, which may have any channel count.
func NewStereoMixer(src Source) *StereoMixer {
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 8192),
	}
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return 2 }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }

func (m *StereoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixer source: %w", err)
	}
	return nil
}

// ReadSamples fills dst with stereo frames and returns the number of
// float32 values written. len(dst) must be even.
func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels < 1 {
		return 0, ErrNoChannels
	}
	if channels == 2 {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / 2
	need := frames * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}

	n, err := m.src.ReadSamples(m.tmp[:need])
	got := n / channels

	switch channels {
	case 1:
		for f := range got {
			dst[2*f] = m.tmp[f]
			dst[2*f+1] = m.tmp[f]
		}
	default:
		left := float32(1) / float32((channels+1)/2)
		right := float32(1) / float32(channels/2)
		for f := range got {
			frame := m.tmp[f*channels : (f+1)*channels]
			var l, r float32
			for c, v := range frame {
				if c%2 == 0 {
					l += v
				} else {
					r += v
				}
			}
			dst[2*f] = l * left
			dst[2*f+1] = r * right
		}
	}

	return got * 2, err
}
