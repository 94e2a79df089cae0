// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
)

// ErrWrite is returned by FailingWriter.
var ErrWrite = errors.New("audiotest: write failed")

// Payload builds an interleaved stereo 16-bit payload of n frames, asking
// sample for the left and right values of each frame.
func Payload(n int, sample func(frame int) (left, right int16)) []byte {
	buf := make([]byte, n*4)
	for i := range n {
		l, r := sample(i)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(l))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(r))
	}
	return buf
}

// CountingPayload numbers every frame: frame i holds (i+1, -(i+1)), so no two
// frames are equal and order mistakes are easy to see.
func CountingPayload(n int) []byte {
	return Payload(n, func(i int) (int16, int16) {
		return int16(i + 1), int16(-(i + 1))
	})
}

// MSUFile prefixes payload with an MSU-1 header carrying loop.
func MSUFile(loop uint32, payload []byte) []byte {
	buf := make([]byte, 8, 8+len(payload))
	copy(buf, "MSU1")
	binary.LittleEndian.PutUint32(buf[4:], loop)
	return append(buf, payload...)
}

// ConstNoise always yields the same dither value.
type ConstNoise int32

func (n ConstNoise) Sample() int32 { return int32(n) }

// SequenceNoise replays Values in order and then repeats them.
type SequenceNoise struct {
	Values []int32
	next   int
}

func (s *SequenceNoise) Sample() int32 {
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// FailingWriter accepts Limit bytes and then fails every write.
type FailingWriter struct {
	Limit   int
	written int
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.Limit {
		n := w.Limit - w.written
		w.written = w.Limit
		return n, ErrWrite
	}
	w.written += len(p)
	return len(p), nil
}
