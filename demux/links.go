// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Link records one logical stream of a chained file. StartByte and EndByte
// are transport offsets of its first page and the end of its last page.
// Offsets stay zero when no position query is available.
type Link struct {
	SerialNumber uint32 `msgpack:"serial"`
	StartByte    int64  `msgpack:"start"`
	EndByte      int64  `msgpack:"end"`
	Samples      uint64 `msgpack:"samples"`
}

// LinkTable is indexed by link number. Entries only ever get appended, so
// an index handed out once keeps referring to the same link.
type LinkTable []Link

const linkTableVersion = 1

type linkTableFile struct {
	Version int    `msgpack:"version"`
	Links   []Link `msgpack:"links"`
}

// TotalSamples sums the sample counts of all links.
func (t LinkTable) TotalSamples() uint64 {
	var total uint64
	for _, l := range t {
		total += l.Samples
	}
	return total
}

// MarshalBinary encodes the table with msgpack.
func (t LinkTable) MarshalBinary() ([]byte, error) {
	data, err := msgpack.Marshal(linkTableFile{Version: linkTableVersion, Links: []Link(t)})
	if err != nil {
		return nil, fmt.Errorf("demux: encode link table: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a table written by MarshalBinary.
func (t *LinkTable) UnmarshalBinary(data []byte) error {
	var f linkTableFile
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("demux: decode link table: %w", err)
	}
	if f.Version != linkTableVersion {
		return fmt.Errorf("%w: %d", ErrLinkTableVersion, f.Version)
	}
	*t = LinkTable(f.Links)
	return nil
}

// entry returns link i, growing the table as needed.
func (t *LinkTable) entry(i int) *Link {
	for len(*t) <= i {
		*t = append(*t, Link{})
	}
	return &(*t)[i]
}
