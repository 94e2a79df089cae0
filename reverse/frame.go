// SPDX-License-Identifier: EPL-2.0

package reverse

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FrameSize is the size in bytes of one stereo 16-bit frame.
const FrameSize = 4

// Frame is one little-endian stereo sample pair: left in bytes 0..2, right
// in bytes 2..4.
type Frame [FrameSize]byte

// NewFrame packs left and right into a Frame.
func NewFrame(left, right int16) Frame {
	var f Frame
	binary.LittleEndian.PutUint16(f[0:2], uint16(left))
	binary.LittleEndian.PutUint16(f[2:4], uint16(right))
	return f
}

// Left decodes the left sample from bytes 0..2.
func (f Frame) Left() int16 { return int16(binary.LittleEndian.Uint16(f[0:2])) }

// Right decodes the right sample from bytes 2..4.
func (f Frame) Right() int16 { return int16(binary.LittleEndian.Uint16(f[2:4])) }

// Reverser is a cyclic cursor over the frames of a buffer, newest first.
// It yields the last frame, then the one before it, down to the first frame,
// and then starts over from the last frame again. The buffer is never copied
// or modified.
type Reverser struct {
	buf    []byte
	frames int
	pos    int // frames emitted since the last wrap
}

// NewReverser panics if len(buf) is not a multiple of FrameSize; callers
// validate payloads before constructing one.
func NewReverser(buf []byte) *Reverser {
	if len(buf)%FrameSize != 0 {
		panic(fmt.Sprintf("reverse: buffer length %d is not a multiple of %d", len(buf), FrameSize))
	}
	return &Reverser{
		buf:    buf,
		frames: len(buf) / FrameSize,
	}
}

// Len returns the number of frames in one pass.
func (r *Reverser) Len() int { return r.frames }

// Reset rewinds the cursor to the last frame of the buffer.
func (r *Reverser) Reset() { r.pos = 0 }

// Next returns the next frame in reverse order, wrapping at the start of the
// buffer. It panics on an empty buffer.
func (r *Reverser) Next() Frame {
	if r.frames == 0 {
		panic("reverse: Next called on empty buffer")
	}

	idx := (r.frames - 1 - r.pos) * FrameSize

	var f Frame
	copy(f[:], r.buf[idx:idx+FrameSize])

	r.pos++
	if r.pos == r.frames {
		r.pos = 0
	}
	return f
}

// Write emits every frame of buf once, last frame first.
func Write(w io.Writer, buf []byte) (int, error) {
	rev := NewReverser(buf)
	fw := newFrameWriter(w)

	for range rev.Len() {
		fw.put(rev.Next())
	}

	if err := fw.flush(); err != nil {
		return 0, err
	}
	return rev.Len(), nil
}

// chunkSize is how many bytes are buffered before each Write call.
const chunkSize = 8192

// frameWriter batches frames into chunkSize writes. The first write error
// sticks and every later put is dropped.
type frameWriter struct {
	w   io.Writer
	buf []byte
	err error
}

func newFrameWriter(w io.Writer) *frameWriter {
	return &frameWriter{
		w:   w,
		buf: make([]byte, 0, chunkSize),
	}
}

func (fw *frameWriter) put(f Frame) {
	if fw.err != nil {
		return
	}

	fw.buf = append(fw.buf, f[:]...)
	if len(fw.buf) == cap(fw.buf) {
		fw.writeChunk()
	}
}

func (fw *frameWriter) writeChunk() {
	if _, err := fw.w.Write(fw.buf); err != nil {
		fw.err = fmt.Errorf("writing audio data: %w", err)
	}
	fw.buf = fw.buf[:0]
}

func (fw *frameWriter) flush() error {
	if fw.err == nil && len(fw.buf) > 0 {
		fw.writeChunk()
	}
	return fw.err
}
