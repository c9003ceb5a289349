// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"encoding/binary"
)

// DefaultBufferLimit caps how large a Sync buffer may grow.
const DefaultBufferLimit = 1 << 20

// Sync accumulates raw bytes and cuts them into pages.
//
// Bytes in data[returned:fill] have been written but not yet handed out as
// part of a page.
type Sync struct {
	data     []byte
	fill     int
	returned int
	pending  int
	unsynced bool
	limit    int
}

// NewSync returns an empty Sync limited to DefaultBufferLimit bytes.
func NewSync() *Sync {
	return &Sync{limit: DefaultBufferLimit}
}

// SetLimit changes the buffer limit. Values below MaxPageSize are raised to
// it, otherwise a maximal page could never be assembled.
func (s *Sync) SetLimit(n int) {
	s.limit = max(n, MaxPageSize)
}

// Buffer returns a writable region of exactly size bytes following the
// buffered data. Consumed bytes are compacted away first, which invalidates
// previously returned pages.
func (s *Sync) Buffer(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrOverflow
	}

	if s.returned > 0 {
		s.fill = copy(s.data, s.data[s.returned:s.fill])
		s.returned = 0
	}

	need := s.fill + size
	if need > s.limit {
		return nil, ErrBufferLimit
	}
	if need > len(s.data) {
		grown := make([]byte, min(need+need/2, s.limit))
		copy(grown, s.data[:s.fill])
		s.data = grown
	}

	s.pending = size
	return s.data[s.fill:need:need], nil
}

// Wrote commits n bytes of the region returned by the last Buffer call.
func (s *Sync) Wrote(n int) error {
	if n < 0 || n > s.pending {
		return ErrOverflow
	}
	s.fill += n
	s.pending -= n
	return nil
}

// Buffered reports how many written bytes have not been returned as pages.
func (s *Sync) Buffered() int {
	return s.fill - s.returned
}

// Room reports how many more bytes can be buffered before the limit is
// reached. Bytes already returned as pages do not count.
func (s *Sync) Room() int {
	return max(s.limit-s.Buffered(), 0)
}

// Reset drops all buffered bytes and sync state.
func (s *Sync) Reset() {
	s.fill = 0
	s.returned = 0
	s.pending = 0
	s.unsynced = false
}

// PageOut extracts the next complete page.
//
// It returns ErrNeedMore when no complete page is buffered, and ErrLostSync
// the first time bytes have to be skipped after a good page. While still
// unsynced, further skipping is silent.
func (s *Sync) PageOut() (Page, error) {
	for {
		page, skipped, err := s.seek()
		if err != nil {
			return Page{}, err
		}
		if skipped == 0 {
			s.unsynced = false
			return page, nil
		}
		if !s.unsynced {
			s.unsynced = true
			return Page{}, ErrLostSync
		}
	}
}

// seek returns a page, or the number of bytes it skipped looking for one.
func (s *Sync) seek() (Page, int, error) {
	b := s.data[s.returned:s.fill]
	if len(b) < HeaderSize {
		if len(b) >= 4 && !bytes.Equal(b[:4], capturePattern[:]) {
			return s.skip(b)
		}
		return Page{}, 0, ErrNeedMore
	}

	if !bytes.Equal(b[:4], capturePattern[:]) || b[4] != 0 {
		return s.skip(b)
	}

	hlen := HeaderSize + int(b[26])
	if len(b) < hlen {
		return Page{}, 0, ErrNeedMore
	}

	blen := 0
	for _, l := range b[HeaderSize:hlen] {
		blen += int(l)
	}
	if len(b) < hlen+blen {
		return Page{}, 0, ErrNeedMore
	}

	header := b[:hlen:hlen]
	body := b[hlen : hlen+blen : hlen+blen]
	if binary.LittleEndian.Uint32(header[22:26]) != Checksum(header, body) {
		return s.skip(b)
	}

	s.returned += hlen + blen
	return Page{Header: header, Body: body}, 0, nil
}

// skip advances to the next possible capture pattern.
func (s *Sync) skip(b []byte) (Page, int, error) {
	n := len(b)
	if next := bytes.IndexByte(b[1:], 'O'); next >= 0 {
		n = next + 1
	}
	s.returned += n
	return Page{}, n, nil
}
