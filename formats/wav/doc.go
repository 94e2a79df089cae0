// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files through
// github.com/go-audio/wav.
//
// Decoding:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Encoding drains any audio.Source into a WAV file. The writer must be
// seekable so the RIFF sizes can be patched once the length is known:
//
//	out, _ := os.Create("preview.wav")
//	err := wav.Encode(out, msu.NewSource(track))
//
// Only PCM 16-bit input is accepted; anything else returns
// ErrOnlyPCM16bitSupported.
package wav
