// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/oggflac/internal/audiotest"
)

// link is an encoded Ogg FLAC link together with the bytes a Demuxer must
// produce for it.
type link struct {
	serial  uint32
	samples int64
	data    []byte
	payload []byte
}

func headerPacket(major byte) []byte {
	return append(audiotest.MappingHeader(major, 0, 1), "fLaC-streaminfo"...)
}

func packet(seed byte, size int) []byte {
	p := make([]byte, size)
	for i := range p {
		p[i] = seed + byte(i)
	}
	return p
}

// makeLink encodes pages of packets. The first packet of the first page must
// start with a mapping header; the last page carries EOS and the sample
// count as granule position.
func makeLink(serial uint32, samples int64, pages ...[][]byte) link {
	l := link{serial: serial, samples: samples}
	w := audiotest.NewLinkWriter(serial)
	for i, pkts := range pages {
		var flags byte
		granule := samples * int64(i) / int64(len(pages))
		if i == len(pages)-1 {
			flags = audiotest.FlagEOS
			granule = samples
		}
		w.Page(flags, granule, pkts...)

		for j, p := range pkts {
			if i == 0 && j == 0 && len(p) >= audiotest.MappingHeaderSize && p[0] == 0x7F {
				p = p[audiotest.MappingHeaderSize:]
			}
			l.payload = append(l.payload, p...)
		}
	}
	l.data = w.Bytes()
	return l
}

// threePageLink is a link of three pages with two packets each.
func threePageLink(serial uint32, samples int64, seed byte) link {
	return makeLink(serial, samples,
		[][]byte{headerPacket(1), packet(seed, 40)},
		[][]byte{packet(seed+1, 300), packet(seed+2, 17)},
		[][]byte{packet(seed+3, 255), packet(seed+4, 1)},
	)
}

func concat(links ...link) (data, payload []byte) {
	for _, l := range links {
		data = append(data, l.data...)
		payload = append(payload, l.payload...)
	}
	return data, payload
}

// readAll reads until io.EOF with a buffer of the given size, moving past
// every end of link. It returns the bytes read and how many link ends were
// crossed.
func readAll(t *testing.T, d *Demuxer, size int) ([]byte, int) {
	t.Helper()

	var out bytes.Buffer
	ends := 0
	buf := make([]byte, size)
	for {
		n, err := d.Read(buf)
		out.Write(buf[:n])
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return out.Bytes(), ends
		case errors.Is(err, ErrEndOfLink):
			ends++
			d.NextLink()
		default:
			t.Fatalf("Read() error = %v after %d bytes", err, out.Len())
		}
	}
}

// noSeek hides the io.Seeker of the wrapped reader.
type noSeek struct{ io.Reader }
