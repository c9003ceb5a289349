// SPDX-License-Identifier: EPL-2.0

package ogg

import "encoding/binary"

// Page layout constants.
const (
	HeaderSize  = 27
	MaxSegments = 255
	MaxPageSize = HeaderSize + MaxSegments + MaxSegments*255
)

// Header type flags.
const (
	FlagContinued byte = 0x01
	FlagBOS       byte = 0x02
	FlagEOS       byte = 0x04
)

var capturePattern = [4]byte{'O', 'g', 'g', 'S'}

// Page is a view of one complete page: the fixed header plus segment table,
// and the body holding the segment data.
type Page struct {
	Header []byte
	Body   []byte
}

func (p Page) Version() byte    { return p.Header[4] }
func (p Page) Flags() byte      { return p.Header[5] }
func (p Page) Continued() bool  { return p.Flags()&FlagContinued != 0 }
func (p Page) BOS() bool        { return p.Flags()&FlagBOS != 0 }
func (p Page) EOS() bool        { return p.Flags()&FlagEOS != 0 }
func (p Page) Segments() []byte { return p.Header[HeaderSize:] }
func (p Page) Len() int         { return len(p.Header) + len(p.Body) }

// GranulePos returns the absolute granule position; -1 means no packet
// finishes on this page.
func (p Page) GranulePos() int64 {
	return int64(binary.LittleEndian.Uint64(p.Header[6:14]))
}

func (p Page) SerialNo() uint32 {
	return binary.LittleEndian.Uint32(p.Header[14:18])
}

func (p Page) PageNo() uint32 {
	return binary.LittleEndian.Uint32(p.Header[18:22])
}

// Packets counts the packets that complete on this page.
func (p Page) Packets() int {
	n := 0
	for _, l := range p.Segments() {
		if l < 255 {
			n++
		}
	}
	return n
}
