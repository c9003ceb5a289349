// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/ik5/oggflac/internal/ogg"
)

const (
	// DefaultChunkSize is the minimum transport read size.
	DefaultChunkSize = 8192

	maxReadSize = 1 << 16

	// maxStalls is how many empty reads in a row a transport may return
	// before it is considered stuck.
	maxStalls = 100
)

// PositionFunc reports the current transport offset in bytes.
type PositionFunc func() (int64, error)

// state is where the byte bridge stands between two Read calls.
type state int

const (
	// stateNeedPage: the stream has no complete packet left, pull a page.
	stateNeedPage state = iota
	// stateNeedPacket: a page was submitted, pull a packet from it.
	stateNeedPacket
	// stateHavePacket: part of the working packet is still to be copied.
	stateHavePacket
	// stateLinkDrained: the end-of-stream packet of a link was delivered,
	// the first page of the next link has not been seen yet.
	stateLinkDrained
	// stateEndOfLink: the next link's first page is in; waiting for NextLink.
	stateEndOfLink
	// stateEndOfStream: nothing more will be delivered.
	stateEndOfStream
)

func (s state) String() string {
	switch s {
	case stateNeedPage:
		return "need-page"
	case stateNeedPacket:
		return "need-packet"
	case stateHavePacket:
		return "have-packet"
	case stateLinkDrained:
		return "link-drained"
	case stateEndOfLink:
		return "end-of-link"
	case stateEndOfStream:
		return "end-of-stream"
	default:
		return "unknown"
	}
}

// Demuxer extracts the native FLAC byte stream from Ogg FLAC input.
type Demuxer struct {
	src      io.Reader
	position PositionFunc
	log      *zap.Logger

	sync   *ogg.Sync
	stream *ogg.Stream
	packet ogg.Packet
	state  state

	needSerial     bool
	seeking        bool
	useFirstSerial bool
	chained        bool
	eof            bool
	closed         bool

	serial       uint32
	versionMajor int
	versionMinor int
	chunkSize    int
	stalls       int

	current       int
	linksIndexed  int
	linksDetected int
	links         LinkTable
}

// New returns a Demuxer reading Ogg FLAC data from src. By default it adopts
// the serial number of the first FLAC stream and stops at its end.
func New(src io.Reader, opts ...Option) *Demuxer {
	d := &Demuxer{
		src:            src,
		log:            zap.NewNop(),
		sync:           ogg.NewSync(),
		useFirstSerial: true,
		versionMajor:   -1,
		versionMinor:   -1,
		chunkSize:      DefaultChunkSize,
	}
	if s, ok := src.(io.Seeker); ok {
		d.position = func() (int64, error) {
			return s.Seek(0, io.SeekCurrent)
		}
	}

	for _, opt := range opts {
		opt(d)
	}

	d.needSerial = d.useFirstSerial || d.chained
	d.stream = ogg.NewStream(d.serial)
	return d
}

// Close releases the page and packet buffers. Read fails with ErrClosed
// afterwards.
func (d *Demuxer) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.sync = nil
	d.stream = nil
	d.packet = ogg.Packet{}
	d.links = nil
	return nil
}

// SetSerialNumber restricts decoding to the logical stream with the given
// serial number.
func (d *Demuxer) SetSerialNumber(serial uint32) {
	d.useFirstSerial = false
	d.serial = serial
	if d.stream != nil {
		d.stream.ResetSerial(serial)
	}
	d.refreshNeedSerial()
}

// SetDefaults restores first-serial adoption and disables chaining.
func (d *Demuxer) SetDefaults() {
	d.useFirstSerial = true
	d.chained = false
	d.refreshNeedSerial()
}

func (d *Demuxer) SetDecodeChainedStream(enabled bool) {
	d.chained = enabled
	d.refreshNeedSerial()
}

func (d *Demuxer) DecodeChainedStream() bool { return d.chained }

// refreshNeedSerial re-derives serial adoption from the configuration as
// long as no stream has been picked yet.
func (d *Demuxer) refreshNeedSerial() {
	if d.linksDetected == 0 && !d.seeking {
		d.needSerial = d.useFirstSerial || d.chained
	}
}

// Flush drops buffered pages and packets, typically after the transport
// was repositioned. The link table and link counters are kept.
func (d *Demuxer) Flush() {
	if d.closed {
		return
	}
	d.stream.Reset()
	d.sync.Reset()
	d.packet = ogg.Packet{}
	d.state = stateNeedPage
	d.eof = false
	d.stalls = 0
}

// Reset flushes and rewinds to the first link, for a transport that was
// rewound to offset zero.
func (d *Demuxer) Reset() {
	d.Flush()
	d.current = 0
	if d.useFirstSerial || d.chained {
		d.needSerial = true
	}
}

// NextLink moves past an ErrEndOfLink to the next link.
func (d *Demuxer) NextLink() {
	switch d.state {
	case stateEndOfLink:
		d.state = stateNeedPacket
	case stateLinkDrained:
		d.state = stateNeedPage
	}
	d.current++
	d.log.Debug("next link", zap.Int("link", d.current))
}

// CurrentLink is the number of the link being read, counting from zero.
func (d *Demuxer) CurrentLink() int { return d.current }

// LinksDetected counts links whose first page has been seen.
func (d *Demuxer) LinksDetected() int { return d.linksDetected }

// LinksIndexed counts links read through to their end, whose table entries
// are therefore complete.
func (d *Demuxer) LinksIndexed() int { return d.linksIndexed }

// Links returns a copy of the completely indexed links.
func (d *Demuxer) Links() LinkTable {
	return slices.Clone(d.links[:min(d.linksIndexed, len(d.links))])
}

// SerialNumber is the serial number of the logical stream being decoded.
func (d *Demuxer) SerialNumber() uint32 { return d.serial }

// MappingVersion returns the version of the last mapping header seen. ok is
// false before any header was parsed.
func (d *Demuxer) MappingVersion() (major, minor int, ok bool) {
	return d.versionMajor, d.versionMinor, d.versionMajor >= 0
}

// tell queries the transport offset, if there is a way to.
func (d *Demuxer) tell() (int64, bool) {
	if d.position == nil {
		return 0, false
	}
	pos, err := d.position()
	if err != nil {
		d.log.Debug("position query failed", zap.Error(err))
		return 0, false
	}
	return pos, true
}
