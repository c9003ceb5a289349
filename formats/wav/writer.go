// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/oggflac/audio"
	"github.com/ik5/oggflac/utils"
)

const (
	pcmFormat      = 1
	defaultBufSize = 4096
)

// WriteSource drains src into w as PCM WAV and returns the number of sample
// frames written. If src fails, everything read before the failure is still
// written and the header finalized.
func WriteSource(w io.WriteSeeker, src audio.Source, bitDepth int) (frames int, err error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	if channels <= 0 {
		return 0, ErrNoChannels
	}

	enc := gowav.NewEncoder(w, src.SampleRate(), bitDepth, channels, pcmFormat)
	defer func() {
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wav: finish: %w", cerr)
		}
	}()

	size := max(src.BufSize(), defaultBufSize)
	buf := make([]float32, size-size%channels)
	out := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		SourceBitDepth: bitDepth,
	}

	for {
		n, rerr := src.ReadSamples(buf)
		if n > 0 {
			out.Data = convert(out.Data[:0], buf[:n], bitDepth)
			if err := enc.Write(out); err != nil {
				return frames, fmt.Errorf("wav: write samples: %w", err)
			}
			frames += n / channels
		}

		if errors.Is(rerr, io.EOF) {
			if frames == 0 {
				// Forces the encoder to emit its header.
				out.Data = out.Data[:0]
				if err := enc.Write(out); err != nil {
					return 0, fmt.Errorf("wav: write header: %w", err)
				}
			}
			return frames, nil
		}
		if rerr != nil {
			return frames, fmt.Errorf("wav: read samples: %w", rerr)
		}
	}
}

func convert(dst []int, src []float32, bitDepth int) []int {
	for _, x := range src {
		v := utils.Float32ToInt(x, bitDepth)
		if bitDepth == 8 {
			v += 128
		}
		dst = append(dst, v)
	}
	return dst
}
