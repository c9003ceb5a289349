// SPDX-License-Identifier: EPL-2.0

package oggflac

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/ik5/oggflac/demux"
)

// linkReader presents the current link of a Demuxer as a plain reader that
// ends with io.EOF, which is what the FLAC parser expects.
type linkReader struct {
	d   *demux.Demuxer
	log *zap.Logger

	// endOfLink is set when the link ended because another one follows.
	endOfLink bool
	err       error
}

func (r *linkReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	for {
		n, err := r.d.Read(p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, demux.ErrLostSync):
			r.log.Warn("lost sync, skipping to next page", zap.Int("link", r.d.CurrentLink()))
			if n > 0 {
				return n, nil
			}
			continue
		case errors.Is(err, demux.ErrEndOfLink):
			r.endOfLink = true
			r.err = io.EOF
		default:
			r.err = err
		}
		return n, r.err
	}
}

// cause prefers the demuxer's error over what the parser made of it.
func (r *linkReader) cause(err error) error {
	if r.err != nil && !errors.Is(r.err, io.EOF) {
		return r.err
	}
	return err
}
