// SPDX-License-Identifier: EPL-2.0

package ogg

// Ogg uses a non-reflected CRC-32 with polynomial 0x04c11db7, zero initial
// value and no final xor, so hash/crc32 cannot produce it.
var crcTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = (r << 1) ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func crcUpdate(crc uint32, data []byte) uint32 {
	for _, b := range data {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^b]
	}
	return crc
}

// Checksum returns the page CRC of header and body, computed as if the
// checksum field (header bytes 22..25) were zero.
func Checksum(header, body []byte) uint32 {
	var zero [4]byte
	crc := crcUpdate(0, header[:22])
	crc = crcUpdate(crc, zero[:])
	crc = crcUpdate(crc, header[26:])
	return crcUpdate(crc, body)
}
