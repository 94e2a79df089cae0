// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to bring foreign
// audio into MSU-1 shape.
//
// This package contains:
//   - Source interface for audio input
//   - Resampler for sample rate conversion
//   - StereoMixer for channel layout conversion
//   - Registry for looking up decoders by format name or file extension
//
// # Source Interface
//
// All decoders and processors implement Source, so they chain:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Building an MSU-1 pipeline
//
// MSU-1 audio is always 44.1 kHz stereo:
//
//	stereo := audio.NewStereoMixer(audio.NewResampler(src, 44100))
//	buf := make([]float32, 4096)
//	n, err := stereo.ReadSamples(buf)
//
// The Resampler uses Catmull-Rom interpolation and applies a light low-pass
// when downsampling. When the source already runs at the target rate it is a
// pass-through.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.ForPath("song.WAV")
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel.
//
// # Error Handling
//
// ReadSamples returns io.EOF once the stream is drained, possibly together
// with the final samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    consume(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
