// SPDX-License-Identifier: EPL-2.0

package reverse

import (
	"bytes"
	"io"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/msupcm/internal/audiotest"
)

func frameAt(buf []byte, i int) Frame {
	var f Frame
	copy(f[:], buf[i*FrameSize:])
	return f
}

func TestGain(t *testing.T) {
	t.Parallel()

	// exp(-6) * 65536 = 162.45
	require.Equal(t, int32(162), Gain(10, 10))
	require.Equal(t, int32(162), Gain(1, 1))

	for _, total := range []int{2, 100, 44100, 600 * 44100} {
		last := Gain(1, total)
		require.Equal(t, int32(math.Exp(-6/float64(total))*65536), last)
		require.Less(t, last, int32(GainScale), "total %d", total)

		prev := int32(0)
		for rem := total; rem >= 1; rem -= max(1, total/50) {
			g := Gain(rem, total)
			require.GreaterOrEqual(t, g, prev, "rem %d of %d", rem, total)
			prev = g
		}
	}
}

func TestApplyGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample int16
		gain   int32
		dither int32
		want   int16
	}{
		{name: "unity minus one step", sample: 1000, gain: GainScale - 1, want: 999},
		{name: "half gain", sample: 1000, gain: GainScale / 2, want: 500},
		{name: "truncates negative down", sample: -1, gain: GainScale - 1, want: -1},
		{name: "truncates positive down", sample: 1, gain: GainScale - 1, want: 0},
		{name: "dither carries over", sample: 1, gain: GainScale / 2, dither: DitherAmplitude, want: 1},
		{name: "negative dither borrows", sample: 2, gain: GainScale / 2, dither: -1, want: 0},
		{name: "full scale negative", sample: math.MinInt16, gain: GainScale - 1, dither: -DitherAmplitude, want: math.MinInt16},
		{name: "full scale positive", sample: math.MaxInt16, gain: GainScale - 1, dither: DitherAmplitude, want: math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, applyGain(tt.sample, tt.gain, tt.dither))
		})
	}
}

func TestUniformNoise_Bounds(t *testing.T) {
	t.Parallel()

	noise := NewUniformNoise(rand.New(rand.NewPCG(1, 2)))

	lo, hi := int32(math.MaxInt32), int32(math.MinInt32)
	for range 1_000_000 {
		v := noise.Sample()
		lo = min(lo, v)
		hi = max(hi, v)
	}

	require.Equal(t, int32(-DitherAmplitude), lo)
	require.Equal(t, int32(DitherAmplitude), hi)
}

func TestFader_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		frames int
		fade   int
	}{
		{name: "no fade", frames: 10, fade: 0},
		{name: "short fade", frames: 10, fade: 3},
		{name: "fade equals loop", frames: 10, fade: 10},
		{name: "fade longer than loop", frames: 10, fade: 25},
		{name: "single frame", frames: 1, fade: 1},
		{name: "empty loop", frames: 0, fade: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			f := Fader{Samples: tt.fade, Noise: audiotest.ConstNoise(0)}
			n, err := f.Write(&out, audiotest.CountingPayload(tt.frames))
			require.NoError(t, err)
			require.Equal(t, tt.frames, n)
			require.Equal(t, tt.frames*FrameSize, out.Len())

			lead := Fader{Samples: tt.fade, Noise: audiotest.ConstNoise(0), LeadIn: true}
			out.Reset()
			n, err = lead.Write(&out, audiotest.CountingPayload(tt.frames))
			require.NoError(t, err)

			want := tt.frames + tt.fade
			if tt.frames == 0 {
				want = 0
			}
			require.Equal(t, want, n)
			require.Equal(t, want*FrameSize, out.Len())
		})
	}
}

func TestFader_Envelope(t *testing.T) {
	t.Parallel()

	const (
		frames = 12
		fade   = 5
	)

	payload := audiotest.Payload(frames, func(int) (int16, int16) { return 30000, -20000 })

	var out bytes.Buffer
	_, err := Fader{Samples: fade, Noise: audiotest.ConstNoise(0)}.Write(&out, payload)
	require.NoError(t, err)

	for i := range fade {
		g := Gain(fade-i, fade)
		want := int16((30000 * g) >> 16)
		got := frameAt(out.Bytes(), i)

		require.Equal(t, want, got.Left(), "frame %d", i)
		// Both channels come from the left sample during the fade.
		require.Equal(t, want, got.Right(), "frame %d", i)
	}

	// The last faded frame is the loudest, still below unity.
	last := frameAt(out.Bytes(), fade-1)
	require.Equal(t, int16((30000*Gain(1, fade))>>16), last.Left())
	require.Less(t, last.Left(), int16(30000))

	// Past the fade everything is copied verbatim.
	for i := fade; i < frames; i++ {
		got := frameAt(out.Bytes(), i)
		require.Equal(t, NewFrame(30000, -20000), got, "frame %d", i)
	}
}

func TestFader_TrueStereo(t *testing.T) {
	t.Parallel()

	payload := audiotest.Payload(4, func(int) (int16, int16) { return 1000, -2000 })

	var out bytes.Buffer
	f := Fader{Samples: 2, Noise: audiotest.ConstNoise(0), TrueStereo: true}
	_, err := f.Write(&out, payload)
	require.NoError(t, err)

	g := Gain(2, 2)
	first := frameAt(out.Bytes(), 0)
	require.Equal(t, int16((1000*g)>>16), first.Left())
	require.Equal(t, int16((-2000*g)>>16), first.Right())
}

func TestFader_DitherOrder(t *testing.T) {
	t.Parallel()

	// Left draws first, then right.
	noise := &audiotest.SequenceNoise{Values: []int32{-1, 0}}
	got := Fader{}.fade(NewFrame(2, 2), GainScale/2, noise)

	require.Equal(t, int16(0), got.Left())
	require.Equal(t, int16(1), got.Right())
}

func TestFader_SequenceFollowsReversal(t *testing.T) {
	t.Parallel()

	payload := audiotest.CountingPayload(8)

	var plain, faded bytes.Buffer
	_, err := Write(&plain, payload)
	require.NoError(t, err)

	_, err = Fader{Samples: 3, Noise: audiotest.ConstNoise(0)}.Write(&faded, payload)
	require.NoError(t, err)

	require.Equal(t, plain.Bytes()[3*FrameSize:], faded.Bytes()[3*FrameSize:])
}

func TestFader_LeadInWrapsAroundLoop(t *testing.T) {
	t.Parallel()

	// Three frame loop, seven frame fade: the fade wraps twice and the
	// verbatim pass picks up where the fade stopped.
	payload := audiotest.CountingPayload(3)

	var out bytes.Buffer
	n, err := Fader{Samples: 7, Noise: audiotest.ConstNoise(0), LeadIn: true}.Write(&out, payload)
	require.NoError(t, err)
	require.Equal(t, 10, n)

	tail := []int16{2, 1, 3}
	for i, left := range tail {
		got := frameAt(out.Bytes(), 7+i)
		require.Equal(t, NewFrame(left, -left), got, "frame %d", 7+i)
	}
}

func TestFader_DefaultNoise(t *testing.T) {
	t.Parallel()

	payload := audiotest.Payload(100, func(int) (int16, int16) { return 0, 0 })

	var out bytes.Buffer
	n, err := Fader{Samples: 100}.Write(&out, payload)
	require.NoError(t, err)
	require.Equal(t, 100, n)

	// Silence times any gain plus at most half a step of dither lands on
	// -1 or 0.
	for i := range n {
		f := frameAt(out.Bytes(), i)
		require.Contains(t, []int16{-1, 0}, f.Left())
		require.Contains(t, []int16{-1, 0}, f.Right())
	}
}

func TestFader_SinkError(t *testing.T) {
	t.Parallel()

	f := Fader{Samples: 10, Noise: audiotest.ConstNoise(0)}
	_, err := f.Write(&audiotest.FailingWriter{}, audiotest.CountingPayload(20))
	require.ErrorIs(t, err, audiotest.ErrWrite)
}

func BenchmarkFader_Write(b *testing.B) {
	payload := audiotest.CountingPayload(44100 * 10)
	f := Fader{
		Samples: 44100 * 3,
		Noise:   NewUniformNoise(rand.New(rand.NewPCG(1, 2))),
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(payload)))

	for b.Loop() {
		_, _ = f.Write(io.Discard, payload)
	}
}
