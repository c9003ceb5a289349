// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ik5/oggflac/internal/ogg"
)

// Read fills p with native FLAC bytes.
//
// Read returns as soon as p is full, without waiting for further pages, so
// a short read only means the caller asked for less than a page holds. It
// returns ErrEndOfLink between the links of a chained stream, io.EOF once
// the transport is exhausted and everything buffered was delivered, and
// one of the package errors otherwise. Bytes copied before an error are
// reported in n and are valid.
func (d *Demuxer) Read(p []byte) (n int, err error) {
	if d.closed {
		return 0, ErrClosed
	}

	for n < len(p) && d.state != stateEndOfStream {
		switch d.state {
		case stateEndOfLink:
			if n > 0 {
				return n, nil
			}
			return 0, ErrEndOfLink
		case stateHavePacket:
			n += d.copyPacket(p[n:])
		case stateNeedPacket:
			err = d.nextPacket()
		case stateNeedPage, stateLinkDrained:
			err = d.nextPage(len(p) - n)
		default:
			err = fmt.Errorf("%w: unexpected state %v", ErrInternal, d.state)
		}
		if err != nil {
			return n, err
		}
	}

	if d.state == stateEndOfStream && n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (d *Demuxer) copyPacket(p []byte) int {
	n := copy(p, d.packet.Data)
	d.packet.Data = d.packet.Data[n:]
	if len(d.packet.Data) > 0 {
		return n
	}

	d.state = stateNeedPacket
	if d.packet.EOS {
		d.endOfLink()
	}
	return n
}

// endOfLink runs once the end-of-stream packet of a link was delivered.
func (d *Demuxer) endOfLink() {
	if !d.chained {
		d.state = stateEndOfStream
		return
	}

	d.state = stateLinkDrained
	if d.current >= d.linksIndexed {
		l := d.links.entry(d.current)
		l.SerialNumber = d.serial
		l.Samples = uint64(max(d.packet.GranulePos, 0))
		if pos, ok := d.tell(); ok {
			l.EndByte = pos - int64(d.sync.Buffered())
		}
		d.linksIndexed = d.current + 1

		d.log.Debug("link indexed",
			zap.Int("link", d.current),
			zap.Uint32("serial", l.SerialNumber),
			zap.Uint64("samples", l.Samples),
			zap.Int64("end_byte", l.EndByte),
		)
	}

	if !d.seeking {
		d.needSerial = true
	}
}

func (d *Demuxer) nextPacket() error {
	pkt, err := d.stream.PacketOut()
	switch {
	case errors.Is(err, ogg.ErrNeedMore):
		d.state = stateNeedPage
		return nil
	case errors.Is(err, ogg.ErrLostSync):
		return ErrLostSync
	case err != nil:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if len(pkt.Data) > 0 && pkt.Data[0] == mappingPacketType {
		h, err := ParseMappingHeader(pkt.Data)
		if !errors.Is(err, ErrNotFlacMapping) {
			d.versionMajor = int(h.Major)
			d.versionMinor = int(h.Minor)
		}
		if err != nil {
			d.log.Debug("rejected mapping header",
				zap.Uint32("serial", d.serial),
				zap.Error(err),
			)
			return err
		}
		pkt.Data = pkt.Data[MappingHeaderSize:]
	}

	d.packet = pkt
	d.state = stateHavePacket
	return nil
}

func (d *Demuxer) nextPage(want int) error {
	page, err := d.sync.PageOut()
	switch {
	case err == nil:
		d.acceptPage(page)
		return nil
	case errors.Is(err, ogg.ErrNeedMore):
		if d.eof {
			d.state = stateEndOfStream
			return nil
		}
		return d.fill(want)
	case errors.Is(err, ogg.ErrLostSync):
		return ErrLostSync
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

func (d *Demuxer) acceptPage(page ogg.Page) {
	if d.needSerial && looksLikeMapping(page.Body) {
		d.adoptSerial(page)
	}

	if err := d.stream.PageIn(page); err != nil {
		// Most likely a page of another logical stream.
		return
	}

	if d.state == stateLinkDrained {
		d.state = stateEndOfLink
	} else {
		d.state = stateNeedPacket
	}
}

// adoptSerial switches to the logical stream of page and records where its
// link starts. page is the first page of the link being read or, once the
// current link is drained, of the one after it.
func (d *Demuxer) adoptSerial(page ogg.Page) {
	link := d.current
	if d.state == stateLinkDrained {
		link++
	}

	d.serial = page.SerialNo()
	d.stream.ResetSerial(d.serial)
	d.needSerial = false

	if link < d.linksDetected {
		return
	}
	d.linksDetected = link + 1

	l := d.links.entry(link)
	if pos, ok := d.tell(); ok {
		l.StartByte = pos - int64(d.sync.Buffered()) - int64(page.Len())
	}

	d.log.Debug("link detected",
		zap.Int("link", link),
		zap.Uint32("serial", d.serial),
		zap.Int64("start_byte", l.StartByte),
	)
}

// fill reads one chunk from the transport into the page buffer. want is the
// number of bytes the caller still asks for. Reads shrink to the room left
// under the buffer limit; a full buffer that still holds no page is an
// allocation failure.
func (d *Demuxer) fill(want int) error {
	room := d.sync.Room()
	if room == 0 {
		return ErrMemoryAllocation
	}
	size := min(max(want, d.chunkSize), maxReadSize, room)

	buf, err := d.sync.Buffer(size)
	if err != nil {
		if errors.Is(err, ogg.ErrBufferLimit) {
			return ErrMemoryAllocation
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	n, rerr := d.src.Read(buf)
	if n < 0 || n > len(buf) {
		return fmt.Errorf("%w: transport reported %d bytes for a %d byte buffer", ErrInternal, n, len(buf))
	}
	if err := d.sync.Wrote(n); err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	switch {
	case rerr == nil:
		if n > 0 {
			d.stalls = 0
			return nil
		}
		d.stalls++
		if d.stalls >= maxStalls {
			return fmt.Errorf("%w: %w", ErrAborted, io.ErrNoProgress)
		}
	case errors.Is(rerr, io.EOF):
		d.eof = true
	default:
		return fmt.Errorf("%w: %w", ErrAborted, rerr)
	}
	return nil
}
