// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"bytes"
	"encoding/binary"
)

// Ogg FLAC mapping header layout: packet type, "FLAC", major and minor
// version, and the big-endian count of header packets that follow.
const (
	MappingHeaderSize   = 9
	MappingMajorVersion = 1

	mappingPacketType = 0x7F
)

var mappingMagic = []byte("FLAC")

// MappingHeader is the parsed identification header of an Ogg FLAC link.
type MappingHeader struct {
	Major   byte
	Minor   byte
	Headers uint16
}

// ParseMappingHeader parses the identification header at the start of b.
// The version fields are filled in even when the major version is rejected.
func ParseMappingHeader(b []byte) (MappingHeader, error) {
	if len(b) < MappingHeaderSize || b[0] != mappingPacketType || !bytes.Equal(b[1:5], mappingMagic) {
		return MappingHeader{}, ErrNotFlacMapping
	}

	h := MappingHeader{
		Major:   b[5],
		Minor:   b[6],
		Headers: binary.BigEndian.Uint16(b[7:9]),
	}
	if h.Major != MappingMajorVersion {
		return h, ErrUnsupportedMappingVersion
	}
	return h, nil
}

// looksLikeMapping is the loose test used to pick a serial number from a
// page: the body is long enough and starts with the mapping packet type.
func looksLikeMapping(body []byte) bool {
	return len(body) > 1+len(mappingMagic) && body[0] == mappingPacketType
}
