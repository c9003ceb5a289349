// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggflac/internal/ogg"
)

// Codec identifies the payload of an Ogg logical stream.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecFLAC
	CodecVorbis
)

func (c Codec) String() string {
	switch c {
	case CodecFLAC:
		return "flac"
	case CodecVorbis:
		return "vorbis"
	default:
		return "unknown"
	}
}

const (
	probeChunk = 4096
	// maxProbe bounds how far Probe looks for the first page.
	maxProbe = 1 << 16
)

var (
	flacSignature   = []byte("\x7fFLAC")
	vorbisSignature = []byte("\x01vorbis")
)

// Classify names the codec of a beginning-of-stream packet.
func Classify(packet []byte) Codec {
	switch {
	case bytes.HasPrefix(packet, flacSignature):
		return CodecFLAC
	case bytes.HasPrefix(packet, vorbisSignature):
		return CodecVorbis
	default:
		return CodecUnknown
	}
}

// Probe reads the first page of r and classifies its codec. The returned
// reader yields the input from its original start: r itself rewound when it
// is an io.Seeker, otherwise the consumed bytes followed by the rest of r.
func Probe(r io.Reader) (Codec, io.Reader, error) {
	var start int64
	seeker, seekable := r.(io.Seeker)
	if seekable {
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			seekable = false
		}
		start = pos
	}

	var consumed bytes.Buffer
	codec, err := firstPage(io.TeeReader(r, &consumed))

	var rest io.Reader
	if seekable {
		if _, serr := seeker.Seek(start, io.SeekStart); serr != nil {
			return CodecUnknown, nil, fmt.Errorf("ogg: rewind after probe: %w", serr)
		}
		rest = r
	} else {
		rest = io.MultiReader(&consumed, r)
	}

	if err != nil {
		return CodecUnknown, rest, err
	}
	if codec == CodecUnknown {
		return codec, rest, ErrUnknownCodec
	}
	return codec, rest, nil
}

func firstPage(r io.Reader) (Codec, error) {
	sync := ogg.NewSync()
	total, stalls := 0, 0
	eof := false

	for {
		page, err := sync.PageOut()
		switch {
		case err == nil:
			return Classify(page.Body), nil
		case errors.Is(err, ogg.ErrLostSync):
			continue
		case !errors.Is(err, ogg.ErrNeedMore):
			return CodecUnknown, fmt.Errorf("ogg: probe: %w", err)
		case eof || total >= maxProbe:
			return CodecUnknown, ErrNotOgg
		}

		buf, err := sync.Buffer(probeChunk)
		if err != nil {
			return CodecUnknown, fmt.Errorf("ogg: probe: %w", err)
		}
		n, rerr := r.Read(buf)
		if err := sync.Wrote(n); err != nil {
			return CodecUnknown, fmt.Errorf("ogg: probe: %w", err)
		}
		total += n

		switch {
		case rerr == nil && n == 0:
			stalls++
			if stalls > 100 {
				return CodecUnknown, fmt.Errorf("ogg: probe: %w", io.ErrNoProgress)
			}
		case rerr == nil:
			stalls = 0
		case errors.Is(rerr, io.EOF):
			eof = true
		default:
			return CodecUnknown, fmt.Errorf("ogg: probe: %w", rerr)
		}
	}
}
