// SPDX-License-Identifier: EPL-2.0

// Package msu reads and writes MSU-1 PCM audio files.
//
// An MSU-1 PCM file is a tiny container used by the SNES MSU-1 audio
// add-on:
//
//	offset  size  contents
//	0       4     ASCII "MSU1"
//	4       4     little-endian uint32 loop point (in frames, 0 = no loop)
//	8       ...   interleaved little-endian int16 stereo samples, 44.1 kHz
//
// A frame is one left and one right sample, 4 bytes total. The payload must
// hold a whole number of frames.
//
// # Reading
//
//	f, _ := os.Open("track-1.pcm")
//	track, err := msu.Decode(f)
//	if errors.Is(err, msu.ErrNotMSUFile) {
//	    // not an MSU-1 file
//	}
//	loop := track.Looped() // payload from the loop point onward
//
// # Writing
//
//	err := msu.Encode(w, track)
//
// # Pipeline integration
//
// Decoder implements audio.Decoder so MSU-1 files can be fed into the same
// processing pipeline as WAV, AIFF, MP3 and Vorbis sources.
package msu
