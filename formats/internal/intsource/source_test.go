// SPDX-License-Identifier: EPL-2.0

package intsource

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/require"
)

// fakeReader hands out ints in chunks of at most len(buf.Data).
type fakeReader struct {
	samples []int
	offset  int
	err     error
}

func (f *fakeReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 8000, NumChannels: 1}
}

func (f *fakeReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.samples[f.offset:])
	f.offset += n
	return n, nil
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := New(&fakeReader{}, 22050, 2, 16)
	require.Equal(t, 22050, src.SampleRate())
	require.Equal(t, 2, src.Channels())
	require.Equal(t, 4096, src.BufSize())
	require.NoError(t, src.Close())
}

func TestSource_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		input    []int
		want     []float32
	}{
		{name: "8 bit", bitDepth: 8, input: []int{-128, 64, 0}, want: []float32{-1, 0.5, 0}},
		{name: "16 bit", bitDepth: 16, input: []int{-32768, 16384, 0}, want: []float32{-1, 0.5, 0}},
		{name: "24 bit", bitDepth: 24, input: []int{-8388608, 4194304, 0}, want: []float32{-1, 0.5, 0}},
		{name: "32 bit", bitDepth: 32, input: []int{-2147483648, 1073741824, 0}, want: []float32{-1, 0.5, 0}},
		{name: "unknown depth as 16 bit", bitDepth: 12, input: []int{-32768, 16384, 0}, want: []float32{-1, 0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := New(&fakeReader{samples: tt.input}, 8000, 1, tt.bitDepth)
			dst := make([]float32, len(tt.input))

			n, err := src.ReadSamples(dst)
			require.NoError(t, err)
			require.Equal(t, len(tt.input), n)
			require.Equal(t, tt.want, dst)
		})
	}
}

func TestSource_ShortReadEndsStream(t *testing.T) {
	t.Parallel()

	src := New(&fakeReader{samples: []int{1, 2, 3, 4, 5}}, 8000, 1, 16)
	dst := make([]float32, 4)

	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 4, src.BufSize())

	n, err = src.ReadSamples(dst)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 1, n)

	n, err = src.ReadSamples(dst)
	require.ErrorIs(t, err, io.EOF)
	require.Zero(t, n)

	n, err = src.ReadSamples(nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad chunk")
	src := New(&fakeReader{err: boom}, 8000, 1, 16)

	_, err := src.ReadSamples(make([]float32, 8))
	require.ErrorIs(t, err, boom)
}
