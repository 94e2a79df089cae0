// SPDX-License-Identifier: EPL-2.0

package msupcm

import (
	"fmt"
	"io"

	"github.com/ik5/msupcm/audio"
	"github.com/ik5/msupcm/formats/aiff"
	"github.com/ik5/msupcm/formats/mp3"
	"github.com/ik5/msupcm/formats/vorbis"
	"github.com/ik5/msupcm/formats/wav"
	"github.com/ik5/msupcm/msu"
	"github.com/ik5/msupcm/utils"
)

// NewRegistry returns a registry with every decoder this module ships,
// keyed by the usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("pcm", msu.Decoder{})
	return reg
}

// ResampleToStereo16 converts src to 44.1 kHz stereo and collects it as
// little-endian 16-bit frames, the MSU-1 payload layout.
//
// The pipeline is:
//  1. resample to msu.SampleRate (skipped when src already runs at it)
//  2. reshape the channel layout to stereo
//  3. convert float32 samples to int16 and pack them
//
// bufferSize is the number of float32 values read per step; it is rounded
// down to an even number.
func ResampleToStereo16(src audio.Source, bufferSize int) ([]byte, error) {
	var stage audio.Source = src
	if src.SampleRate() != msu.SampleRate {
		stage = audio.NewResampler(stage, msu.SampleRate)
	}
	stereo := audio.NewStereoMixer(stage)

	bufferSize -= bufferSize % 2
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	buf := make([]float32, bufferSize)
	payload := make([]byte, 0, msu.SampleRate*msu.FrameSize)
	empty := 0

	for {
		n, err := stereo.ReadSamples(buf)
		if n > 0 {
			empty = 0
			start := len(payload)
			payload = append(payload, make([]byte, 2*n)...)
			utils.PutPCM16(payload[start:], buf[:n])
		} else if err == nil {
			empty++
			if empty >= 8 {
				return nil, audio.ErrNoProgress
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("converting to stereo 16-bit: %w", err)
		}
	}

	return payload, nil
}

// Import converts src into an MSU-1 track with the given loop point, in
// frames. Zero means no loop.
func Import(src audio.Source, loop uint32) (*msu.Track, error) {
	payload, err := ResampleToStereo16(src, src.BufSize())
	if err != nil {
		return nil, err
	}

	t := &msu.Track{
		Header:  msu.Header{LoopPoint: loop},
		Payload: payload,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Export writes the whole payload of t, intro included, as a 44.1 kHz
// stereo WAV file.
func Export(ws io.WriteSeeker, t *msu.Track) error {
	return wav.Encode(ws, msu.NewSource(t))
}
