// SPDX-License-Identifier: EPL-2.0

package oggflac

import (
	"io"

	"go.uber.org/zap"

	"github.com/ik5/oggflac/audio"
	"github.com/ik5/oggflac/demux"
)

// Decoder opens Ogg FLAC input. The zero value decodes chained files with
// logging disabled.
type Decoder struct {
	// DisableChaining stops decoding after the first link.
	DisableChaining bool

	// ChunkSize is the minimum transport read size; zero uses
	// demux.DefaultChunkSize.
	ChunkSize int

	// Links preloads a link index saved from an earlier Source.Links call
	// on the same file.
	Links demux.LinkTable

	Logger *zap.Logger
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.Open(r)
}

// Open reads the headers of the first link and returns a Source positioned
// at its first sample.
func (d Decoder) Open(r io.Reader) (*Source, error) {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	opts := []demux.Option{
		demux.WithChainedStream(!d.DisableChaining),
		demux.WithChunkSize(d.ChunkSize),
		demux.WithLogger(log),
	}
	if len(d.Links) > 0 {
		opts = append(opts, demux.WithLinkTable(d.Links))
	}

	s := &Source{
		r:     r,
		log:   log,
		demux: demux.New(r, opts...),
	}
	if err := s.openLink(); err != nil {
		_ = s.demux.Close()
		return nil, err
	}
	s.sampleRate = s.linkRate
	s.channels = s.linkChannels
	return s, nil
}
