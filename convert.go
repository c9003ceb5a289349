// SPDX-License-Identifier: EPL-2.0

package oggflac

import (
	"fmt"
	"io"

	"github.com/ik5/oggflac/formats/ogg"
	"github.com/ik5/oggflac/formats/wav"
)

// Summary describes a finished conversion.
type Summary struct {
	Codec      ogg.Codec
	SampleRate int
	Channels   int
	// Frames is the number of sample frames written.
	Frames int
}

// Converter turns Ogg input into WAV. The zero value decodes chained files
// to 16-bit output.
type Converter struct {
	Decoder  ogg.Decoder
	BitDepth int
}

// ConvertToWAV decodes src and writes it to dst as PCM WAV with the given
// bit depth.
func ConvertToWAV(dst io.WriteSeeker, src io.Reader, bitDepth int) (Summary, error) {
	return Converter{BitDepth: bitDepth}.Convert(dst, src)
}

func (c Converter) Convert(dst io.WriteSeeker, src io.Reader) (Summary, error) {
	bitDepth := c.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	in, codec, err := c.Decoder.Open(src)
	if err != nil {
		return Summary{Codec: codec}, fmt.Errorf("open %s input: %w", codec, err)
	}
	defer in.Close()

	summary := Summary{
		Codec:      codec,
		SampleRate: in.SampleRate(),
		Channels:   in.Channels(),
	}

	summary.Frames, err = wav.WriteSource(dst, in, bitDepth)
	if err != nil {
		return summary, fmt.Errorf("convert %s: %w", codec, err)
	}
	return summary, nil
}
