// SPDX-License-Identifier: EPL-2.0

package ogg

// lace is one segment table entry of a submitted page.
type lace struct {
	size    int
	bos     bool
	eos     bool
	hole    bool
	granule int64
}

// Packet is one reassembled packet of a logical stream. Data borrows the
// stream's storage.
type Packet struct {
	Data       []byte
	BOS        bool
	EOS        bool
	GranulePos int64
	PacketNo   int64
}

// Stream reassembles the packets of one logical stream, selected by serial
// number, from submitted pages.
//
// body[bodyRet:] and laces[laceRet:] hold data not yet returned as packets.
type Stream struct {
	serial   uint32
	body     []byte
	bodyRet  int
	laces    []lace
	laceRet  int
	pageNo   int64
	packetNo int64
	eos      bool
}

// NewStream returns a Stream accepting pages with the given serial number.
func NewStream(serial uint32) *Stream {
	return &Stream{serial: serial, pageNo: -1}
}

func (s *Stream) Serial() uint32 { return s.serial }

// EOS reports whether a page flagged end-of-stream has been submitted.
func (s *Stream) EOS() bool { return s.eos }

// Reset drops buffered data and sequence tracking, keeping the serial.
func (s *Stream) Reset() {
	s.body = s.body[:0]
	s.bodyRet = 0
	s.laces = s.laces[:0]
	s.laceRet = 0
	s.pageNo = -1
	s.packetNo = 0
	s.eos = false
}

// ResetSerial resets the stream and switches it to another serial number.
func (s *Stream) ResetSerial(serial uint32) {
	s.Reset()
	s.serial = serial
}

// PageIn submits a page. Pages of other logical streams are rejected with
// ErrSerialMismatch and leave the stream untouched.
func (s *Stream) PageIn(p Page) error {
	if p.Version() != 0 {
		return ErrVersion
	}
	if p.SerialNo() != s.serial {
		return ErrSerialMismatch
	}

	s.compact()

	segs := p.Segments()
	body := p.Body
	bos := p.BOS()
	pageNo := int64(p.PageNo())

	if pageNo != s.pageNo {
		s.dropPartial()
		if s.pageNo != -1 {
			s.laces = append(s.laces, lace{hole: true, granule: -1})
		}
	}

	if p.Continued() && !s.inProgress() {
		// The start of this packet was never seen.
		bos = false
		i := 0
		for i < len(segs) {
			l := int(segs[i])
			body = body[l:]
			i++
			if l < 255 {
				break
			}
		}
		segs = segs[i:]
	}

	s.body = append(s.body, body...)

	last := -1
	for _, l := range segs {
		s.laces = append(s.laces, lace{size: int(l), bos: bos, granule: -1})
		bos = false
		if l < 255 {
			last = len(s.laces) - 1
		}
	}
	if last >= 0 {
		s.laces[last].granule = p.GranulePos()
	}

	if p.EOS() {
		s.eos = true
		if len(s.laces) > s.laceRet {
			s.laces[len(s.laces)-1].eos = true
		}
	}

	s.pageNo = pageNo + 1
	return nil
}

// PacketOut returns the next complete packet, ErrNeedMore when the
// submitted pages hold no complete packet, or ErrLostSync once for every gap
// in the page sequence.
func (s *Stream) PacketOut() (Packet, error) {
	if s.laceRet >= len(s.laces) {
		return Packet{}, ErrNeedMore
	}

	if s.laces[s.laceRet].hole {
		s.laceRet++
		s.packetNo++
		return Packet{}, ErrLostSync
	}

	size := 0
	end := s.laceRet
	for {
		if end >= len(s.laces) {
			return Packet{}, ErrNeedMore
		}
		size += s.laces[end].size
		if s.laces[end].size < 255 {
			break
		}
		end++
	}

	first, last := s.laces[s.laceRet], s.laces[end]
	pkt := Packet{
		Data:       s.body[s.bodyRet : s.bodyRet+size : s.bodyRet+size],
		BOS:        first.bos,
		EOS:        last.eos,
		GranulePos: last.granule,
		PacketNo:   s.packetNo,
	}

	s.bodyRet += size
	s.laceRet = end + 1
	s.packetNo++
	return pkt, nil
}

// inProgress reports whether the buffered laces end inside a packet.
func (s *Stream) inProgress() bool {
	if len(s.laces) <= s.laceRet {
		return false
	}
	l := s.laces[len(s.laces)-1]
	return !l.hole && l.size == 255
}

// dropPartial removes the trailing segments of an unfinished packet.
func (s *Stream) dropPartial() {
	end := len(s.laces)
	for end > s.laceRet {
		l := s.laces[end-1]
		if l.hole || l.size < 255 {
			break
		}
		s.body = s.body[:len(s.body)-l.size]
		end--
	}
	s.laces = s.laces[:end]
}

// compact discards returned data. Packets handed out earlier become invalid.
func (s *Stream) compact() {
	if s.bodyRet > 0 {
		s.body = s.body[:copy(s.body, s.body[s.bodyRet:])]
		s.bodyRet = 0
	}
	if s.laceRet > 0 {
		s.laces = s.laces[:copy(s.laces, s.laces[s.laceRet:])]
		s.laceRet = 0
	}
}
