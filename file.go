// SPDX-License-Identifier: EPL-2.0

package msupcm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"github.com/ik5/msupcm/audio"
	"github.com/ik5/msupcm/msu"
)

// ReadTrack loads and validates an MSU-1 file.
func ReadTrack(path string) (t *msu.Track, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	t, err = msu.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// createOutput runs write against a freshly created file at path. The file
// is buffered, flushed and closed, and removed again if anything failed, so
// a failed run never leaves a truncated file that looks valid.
func createOutput(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			err = multierr.Append(err, os.Remove(path))
		}
	}()

	return write(f)
}

// writeBuffered wraps w in a bufio.Writer for fn and flushes it afterwards.
func writeBuffered(w io.Writer, fn func(w io.Writer) error) error {
	bw := bufio.NewWriter(w)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// ReverseFile reverses the MSU-1 file at in into out. The input is read and
// validated completely before out is created.
func ReverseFile(in, out string, opts Options) (Result, error) {
	t, err := ReadTrack(in)
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = createOutput(out, func(f *os.File) error {
		return writeBuffered(f, func(w io.Writer) error {
			var rerr error
			res, rerr = Reverse(w, t, opts)
			return rerr
		})
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// ImportFile decodes in with the decoder registered for its extension and
// writes it to out as an MSU-1 file with the given loop point.
func ImportFile(reg *audio.Registry, in, out string, loop uint32) (t *msu.Track, err error) {
	dec, err := reg.ForPath(in)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(src))

	t, err = Import(src, loop)
	if err != nil {
		return nil, err
	}

	err = createOutput(out, func(f *os.File) error {
		return writeBuffered(f, func(w io.Writer) error {
			return msu.Encode(w, t)
		})
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ExportFile writes the MSU-1 file at in as a WAV file at out.
func ExportFile(in, out string) (*msu.Track, error) {
	t, err := ReadTrack(in)
	if err != nil {
		return nil, err
	}

	err = createOutput(out, func(f *os.File) error {
		return Export(f, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
