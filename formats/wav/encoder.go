// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/msupcm/audio"
	"github.com/ik5/msupcm/utils"
)

// Encode drains src into a 16-bit PCM WAV file written to ws, keeping the
// source rate and channel count. The RIFF sizes are patched on completion,
// which is why a seekable writer is required.
func Encode(ws io.WriteSeeker, src audio.Source) error {
	channels := src.Channels()
	enc := gowav.NewEncoder(ws, src.SampleRate(), 16, channels, wavPCMFormat)

	bufSize := 4096 - 4096%channels
	buf := make([]float32, bufSize)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  src.SampleRate(),
		},
		Data:           make([]int, bufSize),
		SourceBitDepth: 16,
	}

	// The encoder only emits the RIFF header on its first Write; an empty
	// write keeps a silent source from producing a headerless file.
	if err := enc.Write(&goaudio.IntBuffer{Format: intBuf.Format, SourceBitDepth: 16}); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			intBuf.Data = intBuf.Data[:n]
			for i, x := range buf[:n] {
				intBuf.Data[i] = int(utils.Float32ToInt16(x))
			}
			if werr := enc.Write(intBuf); werr != nil {
				return fmt.Errorf("writing wav samples: %w", werr)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
