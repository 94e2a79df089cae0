// SPDX-License-Identifier: EPL-2.0

package msu

import (
	"encoding/binary"
	"io"

	"github.com/ik5/msupcm/audio"
	"github.com/ik5/msupcm/utils"
)

// source exposes a Track payload as an audio.Source.
type source struct {
	track  *Track
	offset int // byte offset into track.Payload
}

func (s *source) SampleRate() int { return SampleRate }
func (s *source) Channels() int   { return Channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%Channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	remaining := (len(s.track.Payload) - s.offset) / 2
	if remaining == 0 {
		return 0, io.EOF
	}

	n := min(len(dst), remaining)
	for i := range n {
		v := int16(binary.LittleEndian.Uint16(s.track.Payload[s.offset+2*i:]))
		dst[i] = utils.Int16ToFloat32(v)
	}
	s.offset += 2 * n

	if s.offset >= len(s.track.Payload) {
		return n, io.EOF
	}
	return n, nil
}

// Decoder decodes MSU-1 PCM files into an audio.Source.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return NewSource(t), nil
}

// NewSource wraps an already decoded track. The whole payload is played,
// including any intro before the loop point.
func NewSource(t *Track) audio.Source {
	return &source{track: t}
}
