// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// ErrAbort is the error returned by AbortReader.
var ErrAbort = errors.New("audiotest: transport aborted")

// ChunkedReader serves data in reads of at most chunk bytes. It implements
// io.Seeker so it doubles as a position query.
type ChunkedReader struct {
	data  []byte
	off   int64
	chunk int

	// Reads counts Read calls.
	Reads int
}

func NewChunkedReader(data []byte, chunk int) *ChunkedReader {
	return &ChunkedReader{data: data, chunk: max(chunk, 1)}
}

func (r *ChunkedReader) Read(p []byte) (int, error) {
	r.Reads++
	if r.off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), r.chunk)], r.data[r.off:])
	r.off += int64(n)
	return n, nil
}

func (r *ChunkedReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.off
	case io.SeekEnd:
		offset += int64(len(r.data))
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if offset < 0 {
		return 0, errors.New("audiotest: negative position")
	}
	r.off = offset
	return offset, nil
}

// AbortReader passes through After bytes of R and then fails with ErrAbort.
type AbortReader struct {
	R     io.Reader
	After int
}

func (r *AbortReader) Read(p []byte) (int, error) {
	if r.After <= 0 {
		return 0, ErrAbort
	}
	n, err := r.R.Read(p[:min(len(p), r.After)])
	r.After -= n
	return n, err
}

// OverReporter claims to have read one byte more than it was given room for.
type OverReporter struct{}

func (OverReporter) Read(p []byte) (int, error) { return len(p) + 1, nil }

// StallReader never makes progress.
type StallReader struct{}

func (StallReader) Read([]byte) (int, error) { return 0, nil }
