// SPDX-License-Identifier: EPL-2.0

package msupcm

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/ik5/msupcm/msu"
	"github.com/ik5/msupcm/reverse"
)

const (
	// DefaultFadeTime is the fade-in length used by the CLI, in seconds.
	DefaultFadeTime = 3.0

	// MaxFadeTime is the longest accepted fade-in, in seconds.
	MaxFadeTime = 600.0
)

// FadeSamples validates a fade time in seconds and converts it to frames at
// the MSU-1 rate, rounding half up.
func FadeSamples(seconds float64) (int, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFadeTime, seconds)
	}
	if seconds > MaxFadeTime {
		return 0, fmt.Errorf("%w: %v > %v", ErrFadeTimeTooLong, seconds, MaxFadeTime)
	}

	return int(math.Floor(seconds*msu.SampleRate + 0.5)), nil
}

// Options controls Reverse.
type Options struct {
	// FadeSamples is the fade-in length in frames. It is ignored for tracks
	// without a loop point.
	FadeSamples int

	// LeadIn places the fade ahead of a full loop pass, see reverse.Fader.
	LeadIn bool

	// TrueStereo fades the right channel from its own samples, see
	// reverse.Fader.
	TrueStereo bool

	// Noise is the dither source for this conversion. A freshly seeded one
	// is created when nil.
	Noise reverse.Noise

	// Logger receives progress at debug level. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Result describes what Reverse wrote.
type Result struct {
	// Header is the header written to the output.
	Header msu.Header
	// Frames is the number of payload frames written.
	Frames int
	// DroppedFrames is the number of intro frames before the loop point that
	// were discarded.
	DroppedFrames int
	// Faded reports whether a fade-in was synthesized.
	Faded bool
}

// Reverse writes the reversed version of t to w.
//
// A track without a loop point is reversed as a whole, with no fade, and
// the output header carries no loop. For a looped track the intro before
// the loop point is dropped, the remaining loop is reversed with a fade-in
// of opts.FadeSamples frames, and the output loop field is set to the fade
// length.
//
// Any write error aborts the conversion; whatever was written to w by then
// must be discarded by the caller.
func Reverse(w io.Writer, t *msu.Track, opts Options) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	if opts.FadeSamples < 0 || uint64(opts.FadeSamples) > math.MaxUint32 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidFadeSamples, opts.FadeSamples)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if !t.HasLoop() {
		res := Result{Header: msu.Header{}}
		if err := msu.WriteHeader(w, res.Header); err != nil {
			return Result{}, err
		}

		log.Debug("reversing unlooped track", zap.Int("frames", t.Frames()))

		n, err := reverse.Write(w, t.Payload)
		if err != nil {
			return Result{}, err
		}
		res.Frames = n
		return res, nil
	}

	res := Result{
		Header:        msu.Header{LoopPoint: uint32(opts.FadeSamples)},
		DroppedFrames: int(t.LoopPoint),
		Faded:         opts.FadeSamples > 0,
	}
	if err := msu.WriteHeader(w, res.Header); err != nil {
		return Result{}, err
	}

	loop := t.Looped()
	log.Debug("reversing looped track",
		zap.Uint32("loop_point", t.LoopPoint),
		zap.Int("loop_frames", len(loop)/msu.FrameSize),
		zap.Int("fade_samples", opts.FadeSamples),
		zap.Bool("lead_in", opts.LeadIn),
	)

	f := reverse.Fader{
		Samples:    opts.FadeSamples,
		Noise:      opts.Noise,
		LeadIn:     opts.LeadIn,
		TrueStereo: opts.TrueStereo,
	}

	n, err := f.Write(w, loop)
	if err != nil {
		return Result{}, err
	}
	res.Frames = n
	return res, nil
}
