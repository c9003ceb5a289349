// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"io"

	"github.com/ik5/oggflac/audio"
	"github.com/ik5/oggflac/formats/oggflac"
)

// Decoder decodes Ogg FLAC and Ogg Vorbis input.
type Decoder struct {
	// FLAC configures decoding of FLAC streams.
	FLAC oggflac.Decoder
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	src, _, err := d.Open(r)
	return src, err
}

// Open probes the codec and decodes r with it.
func (d Decoder) Open(r io.Reader) (audio.Source, Codec, error) {
	codec, rest, err := Probe(r)
	if err != nil {
		return nil, codec, err
	}

	switch codec {
	case CodecFLAC:
		src, err := d.FLAC.Open(rest)
		if err != nil {
			return nil, codec, err
		}
		return src, codec, nil
	default:
		src, err := newVorbisSource(rest)
		if err != nil {
			return nil, codec, err
		}
		return src, codec, nil
	}
}

// Register adds the decoder to reg under the "ogg" and "oga" keys.
func (d Decoder) Register(reg *audio.Registry) {
	for _, name := range []string{"ogg", "oga"} {
		reg.Register(name, d)
	}
}
