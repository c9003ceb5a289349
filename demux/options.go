// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"slices"

	"go.uber.org/zap"
)

// Option configures a Demuxer.
type Option func(*Demuxer)

// WithSerialNumber decodes only the logical stream with the given serial
// number instead of adopting the first FLAC stream found.
func WithSerialNumber(serial uint32) Option {
	return func(d *Demuxer) {
		d.useFirstSerial = false
		d.serial = serial
	}
}

// WithChainedStream enables decoding of chained streams.
func WithChainedStream(enabled bool) Option {
	return func(d *Demuxer) {
		d.chained = enabled
	}
}

// WithPosition sets the query used to learn the transport offset when
// indexing links. By default a transport implementing io.Seeker is asked
// with Seek(0, io.SeekCurrent).
func WithPosition(fn PositionFunc) Option {
	return func(d *Demuxer) {
		d.position = fn
	}
}

// WithChunkSize sets the minimum number of bytes requested from the
// transport per read. Values that are not positive are ignored.
func WithChunkSize(n int) Option {
	return func(d *Demuxer) {
		if n > 0 {
			d.chunkSize = min(n, maxReadSize)
		}
	}
}

// WithBufferLimit caps the page buffer. Limits smaller than the largest
// possible page are raised to it.
func WithBufferLimit(n int) Option {
	return func(d *Demuxer) {
		d.sync.SetLimit(n)
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(d *Demuxer) {
		if log != nil {
			d.log = log
		}
	}
}

// WithLinkTable preloads links indexed by an earlier session over the same
// file, so TargetLink can resolve them before they are read again.
func WithLinkTable(links LinkTable) Option {
	return func(d *Demuxer) {
		d.links = slices.Clone(links)
		d.linksIndexed = len(links)
		d.linksDetected = len(links)
	}
}
