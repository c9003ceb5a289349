// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Page header flags.
const (
	FlagContinued byte = 0x01
	FlagBOS       byte = 0x02
	FlagEOS       byte = 0x04
)

func oggCRC(data ...[]byte) uint32 {
	var crc uint32
	for _, d := range data {
		for _, b := range d {
			crc ^= uint32(b) << 24
			for range 8 {
				if crc&0x80000000 != 0 {
					crc = crc<<1 ^ 0x04c11db7
				} else {
					crc <<= 1
				}
			}
		}
	}
	return crc
}

// Lacing returns the segment table entries for one packet of n bytes.
func Lacing(n int) []byte {
	lacing := bytes.Repeat([]byte{255}, n/255)
	return append(lacing, byte(n%255))
}

// OggPage encodes a single page with a valid CRC.
func OggPage(serial, pageNo uint32, flags byte, granule int64, lacing, body []byte) []byte {
	header := make([]byte, 27, 27+len(lacing))
	copy(header, "OggS")
	header[5] = flags
	binary.LittleEndian.PutUint64(header[6:14], uint64(granule))
	binary.LittleEndian.PutUint32(header[14:18], serial)
	binary.LittleEndian.PutUint32(header[18:22], pageNo)
	header[26] = byte(len(lacing))
	header = append(header, lacing...)
	binary.LittleEndian.PutUint32(header[22:26], oggCRC(header, body))
	return append(header, body...)
}

// LinkWriter writes the pages of one logical stream.
type LinkWriter struct {
	serial uint32
	pageNo uint32
	out    bytes.Buffer
	pages  []int
}

func NewLinkWriter(serial uint32) *LinkWriter {
	return &LinkWriter{serial: serial}
}

// Page writes a page carrying whole packets. The first page gets FlagBOS.
func (w *LinkWriter) Page(flags byte, granule int64, packets ...[]byte) *LinkWriter {
	var lacing, body []byte
	for _, p := range packets {
		lacing = append(lacing, Lacing(len(p))...)
		body = append(body, p...)
	}
	return w.Raw(flags, granule, lacing, body)
}

// Raw writes a page with an explicit segment table, for packets that span
// pages.
func (w *LinkWriter) Raw(flags byte, granule int64, lacing, body []byte) *LinkWriter {
	if w.pageNo == 0 {
		flags |= FlagBOS
	}
	page := OggPage(w.serial, w.pageNo, flags, granule, lacing, body)
	w.pages = append(w.pages, len(page))
	w.out.Write(page)
	w.pageNo++
	return w
}

// Skip burns a page sequence number, as if a page had been lost.
func (w *LinkWriter) Skip() *LinkWriter {
	w.pageNo++
	return w
}

func (w *LinkWriter) Bytes() []byte { return w.out.Bytes() }

// PageSizes lists the encoded size of every page written so far.
func (w *LinkWriter) PageSizes() []int { return w.pages }
