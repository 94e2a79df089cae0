// SPDX-License-Identifier: EPL-2.0

// Package msupcm builds reversed versions of MSU-1 PCM tracks.
//
// MSU-1 tracks are 44.1 kHz, 16-bit stereo PCM with an optional loop point.
// Playing a looped track backwards has no natural start: the reversed loop
// repeats forever, and cutting into it at an arbitrary frame clicks. Reverse
// therefore drops the intro, reverses the loop and fades the first frames in
// from near silence, adding dither to hide the quantization of the gain
// multiplication. The fade length is written into the loop field of the new
// header.
//
// # Quick Start
//
//	fade, err := msupcm.FadeSamples(3.0)
//	if err != nil {
//	    return err
//	}
//	res, err := msupcm.ReverseFile("track-2.pcm", "track-2-rev.pcm", msupcm.Options{
//	    FadeSamples: fade,
//	})
//
// Tracks without a loop point are reversed frame by frame with no fade.
//
// # Lower-level Pieces
//
//   - msu: the container format (header, payload validation, audio.Source)
//   - reverse: the cyclic frame reverser and the fade-in synthesizer
//   - audio: the streaming pipeline (Resampler, StereoMixer, Registry)
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders
//
// # Importing and Exporting
//
// Import turns any decoded source into an MSU-1 track, resampling to
// 44.1 kHz and reshaping to stereo on the way:
//
//	reg := msupcm.NewRegistry()
//	track, err := msupcm.ImportFile(reg, "song.ogg", "track-3.pcm", 88200)
//
// Export writes a track as a WAV file for previewing:
//
//	_, err := msupcm.ExportFile("track-3.pcm", "track-3.wav")
package msupcm
