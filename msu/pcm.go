// SPDX-License-Identifier: EPL-2.0

package msu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic is the 4 byte signature every MSU-1 PCM file starts with.
	Magic = "MSU1"

	// HeaderSize is the size of the magic plus the loop point field.
	HeaderSize = 8

	// FrameSize is the size of one stereo 16-bit frame.
	FrameSize = 4

	// SampleRate is fixed by the MSU-1 hardware.
	SampleRate = 44100

	// Channels is fixed by the MSU-1 hardware.
	Channels = 2
)

// Header is the decoded 8 byte MSU-1 header.
type Header struct {
	// LoopPoint is the frame offset playback jumps back to. Zero means the
	// track plays once.
	LoopPoint uint32
}

// HasLoop reports whether the header carries a loop point.
func (h Header) HasLoop() bool { return h.LoopPoint != 0 }

// ReadHeader reads and validates the magic and loop point.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte

	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, ErrShortHeader
		}
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	if !bytes.Equal(buf[:4], []byte(Magic)) {
		return Header{}, ErrNotMSUFile
	}

	return Header{LoopPoint: binary.LittleEndian.Uint32(buf[4:8])}, nil
}

// WriteHeader writes the magic followed by the loop point field.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte
	copy(buf[:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.LoopPoint)

	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// Track is a fully buffered MSU-1 file.
type Track struct {
	Header
	// Payload holds the raw interleaved frames, len(Payload)%FrameSize == 0.
	Payload []byte
}

// Frames returns the number of frames in the payload.
func (t *Track) Frames() int { return len(t.Payload) / FrameSize }

// Looped returns the payload from the loop point onward. For a track
// without a loop point it returns the whole payload. The result aliases
// t.Payload.
func (t *Track) Looped() []byte {
	if !t.HasLoop() {
		return t.Payload
	}
	return t.Payload[int(t.LoopPoint)*FrameSize:]
}

// Validate checks frame alignment and the loop point bounds.
func (t *Track) Validate() error {
	if len(t.Payload)%FrameSize != 0 {
		return ErrCorruptPayload
	}
	if int64(t.LoopPoint) > int64(t.Frames()) {
		return fmt.Errorf("%w: loop point %d, %d frames", ErrLoopOutOfRange, t.LoopPoint, t.Frames())
	}
	return nil
}

// Decode reads a whole MSU-1 file into memory and validates it.
func Decode(r io.Reader) (*Track, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	t := &Track{Header: h, Payload: payload}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Encode writes the header and payload of t.
func Encode(w io.Writer, t *Track) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := WriteHeader(w, t.Header); err != nil {
		return err
	}

	if _, err := w.Write(t.Payload); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}

// Duration returns the playback length of n frames in seconds.
func Duration(frames int) float64 {
	return float64(frames) / SampleRate
}
