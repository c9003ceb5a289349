// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/oggflac/internal/audiotest"
)

// pagesOf splits encoded pages. The returned pages borrow one Sync buffer
// that is never written again.
func pagesOf(t *testing.T, data []byte) []Page {
	t.Helper()

	s := NewSync()
	buf, err := s.Buffer(len(data))
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	copy(buf, data)
	_ = s.Wrote(len(data))

	var pages []Page
	for {
		p, err := s.PageOut()
		if errors.Is(err, ErrNeedMore) {
			return pages
		}
		if err != nil {
			t.Fatalf("PageOut() error = %v", err)
		}
		pages = append(pages, p)
	}
}

type result struct {
	data []byte
	pkt  Packet
	err  error
}

// packetsAfter submits every page and collects all packet results.
func packetsAfter(t *testing.T, st *Stream, pages []Page) []result {
	t.Helper()

	var out []result
	for _, p := range pages {
		if err := st.PageIn(p); err != nil {
			t.Fatalf("PageIn() error = %v", err)
		}
		for {
			pkt, err := st.PacketOut()
			if errors.Is(err, ErrNeedMore) {
				break
			}
			out = append(out, result{data: bytes.Clone(pkt.Data), pkt: pkt, err: err})
		}
	}
	return out
}

func TestStream_PacketsAndFlags(t *testing.T) {
	t.Parallel()

	data := audiotest.NewLinkWriter(9).
		Page(0, 0, []byte("head")).
		Page(audiotest.FlagEOS, 20, []byte("one"), []byte("two")).
		Bytes()

	st := NewStream(9)
	got := packetsAfter(t, st, pagesOf(t, data))

	want := []struct {
		data    string
		bos     bool
		eos     bool
		granule int64
	}{
		{"head", true, false, 0},
		{"one", false, false, -1},
		{"two", false, true, 20},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d packets, want %d", len(got), len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.err != nil {
			t.Fatalf("packet %d error = %v", i, g.err)
		}
		if string(g.data) != w.data || g.pkt.BOS != w.bos || g.pkt.EOS != w.eos || g.pkt.GranulePos != w.granule {
			t.Errorf("packet %d = {%q bos=%v eos=%v granule=%d}, want %+v",
				i, g.data, g.pkt.BOS, g.pkt.EOS, g.pkt.GranulePos, w)
		}
		if g.pkt.PacketNo != int64(i) {
			t.Errorf("packet %d PacketNo = %d", i, g.pkt.PacketNo)
		}
	}
	if !st.EOS() {
		t.Error("EOS() = false after end-of-stream page")
	}
}

func TestStream_PacketSpanningPages(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 600)
	for i := range payload {
		payload[i] = byte(i)
	}

	data := audiotest.NewLinkWriter(1).
		Raw(0, -1, []byte{255, 255}, payload[:510]).
		Raw(audiotest.FlagContinued, 100, []byte{90}, payload[510:]).
		Bytes()
	pages := pagesOf(t, data)

	st := NewStream(1)
	if err := st.PageIn(pages[0]); err != nil {
		t.Fatalf("PageIn() error = %v", err)
	}
	if _, err := st.PacketOut(); !errors.Is(err, ErrNeedMore) {
		t.Fatalf("PacketOut() after first half error = %v, want ErrNeedMore", err)
	}
	if err := st.PageIn(pages[1]); err != nil {
		t.Fatalf("PageIn() error = %v", err)
	}

	pkt, err := st.PacketOut()
	if err != nil {
		t.Fatalf("PacketOut() error = %v", err)
	}
	if !bytes.Equal(pkt.Data, payload) {
		t.Error("reassembled packet differs from payload")
	}
	if pkt.GranulePos != 100 || !pkt.BOS {
		t.Errorf("packet granule/bos = %d/%v, want 100/true", pkt.GranulePos, pkt.BOS)
	}
}

func TestStream_ForeignSerial(t *testing.T) {
	t.Parallel()

	pages := pagesOf(t, audiotest.NewLinkWriter(5).Page(0, 0, []byte("x")).Bytes())

	st := NewStream(6)
	if err := st.PageIn(pages[0]); !errors.Is(err, ErrSerialMismatch) {
		t.Fatalf("PageIn() error = %v, want ErrSerialMismatch", err)
	}
	if _, err := st.PacketOut(); !errors.Is(err, ErrNeedMore) {
		t.Errorf("PacketOut() error = %v, want ErrNeedMore", err)
	}

	st.ResetSerial(5)
	if st.Serial() != 5 {
		t.Errorf("Serial() = %d, want 5", st.Serial())
	}
	if err := st.PageIn(pages[0]); err != nil {
		t.Errorf("PageIn() after ResetSerial error = %v", err)
	}
}

func TestStream_MissingPageReportsHole(t *testing.T) {
	t.Parallel()

	data := audiotest.NewLinkWriter(3).
		Page(0, 0, []byte("a")).
		Skip().
		Page(0, 5, []byte("c")).
		Bytes()

	got := packetsAfter(t, NewStream(3), pagesOf(t, data))
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[0].err != nil || string(got[0].data) != "a" {
		t.Errorf("first result = %q, %v", got[0].data, got[0].err)
	}
	if !errors.Is(got[1].err, ErrLostSync) {
		t.Errorf("second result error = %v, want ErrLostSync", got[1].err)
	}
	if got[2].err != nil || string(got[2].data) != "c" {
		t.Errorf("third result = %q, %v", got[2].data, got[2].err)
	}
}

func TestStream_ContinuationWithoutStartIsDropped(t *testing.T) {
	t.Parallel()

	data := audiotest.NewLinkWriter(4).
		Raw(0, -1, []byte{255}, bytes.Repeat([]byte{'x'}, 255)).
		Skip().
		Raw(audiotest.FlagContinued, 9, []byte{255, 10, 3}, append(bytes.Repeat([]byte{'y'}, 265), "end"...)).
		Bytes()

	got := packetsAfter(t, NewStream(4), pagesOf(t, data))
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if !errors.Is(got[0].err, ErrLostSync) {
		t.Errorf("first result error = %v, want ErrLostSync", got[0].err)
	}
	if string(got[1].data) != "end" || got[1].pkt.GranulePos != 9 {
		t.Errorf("second result = %q granule %d, want \"end\" granule 9", got[1].data, got[1].pkt.GranulePos)
	}
}

func TestStream_Reset(t *testing.T) {
	t.Parallel()

	pages := pagesOf(t, audiotest.NewLinkWriter(2).Page(audiotest.FlagEOS, 1, []byte("p")).Bytes())

	st := NewStream(2)
	if err := st.PageIn(pages[0]); err != nil {
		t.Fatalf("PageIn() error = %v", err)
	}
	st.Reset()

	if st.EOS() {
		t.Error("EOS() = true after Reset")
	}
	if _, err := st.PacketOut(); !errors.Is(err, ErrNeedMore) {
		t.Errorf("PacketOut() after Reset error = %v, want ErrNeedMore", err)
	}
	if err := st.PageIn(pages[0]); err != nil {
		t.Errorf("PageIn() after Reset error = %v", err)
	}
	if pkt, err := st.PacketOut(); err != nil || string(pkt.Data) != "p" {
		t.Errorf("PacketOut() = %q, %v", pkt.Data, err)
	}
}
