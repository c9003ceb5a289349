// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	// ErrNeedMore means the sync needs more raw bytes before a page is
	// complete, or the stream needs another page before a packet is.
	ErrNeedMore = errors.New("ogg: need more data")

	// ErrLostSync means bytes were skipped while looking for a page, or a
	// page was missing from the logical stream.
	ErrLostSync = errors.New("ogg: lost sync")

	// ErrSerialMismatch means a page belongs to a different logical stream.
	ErrSerialMismatch = errors.New("ogg: page belongs to another logical stream")

	// ErrVersion means the page uses an unknown stream structure version.
	ErrVersion = errors.New("ogg: unsupported stream structure version")

	// ErrOverflow means more bytes were committed than Buffer handed out.
	ErrOverflow = errors.New("ogg: wrote past the buffered region")

	// ErrBufferLimit means the sync buffer would grow past its limit.
	ErrBufferLimit = errors.New("ogg: sync buffer limit exceeded")
)
