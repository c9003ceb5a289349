// SPDX-License-Identifier: EPL-2.0

package demux

import "errors"

var (
	// ErrEndOfLink is returned by Read once every packet of the current link
	// has been delivered and the first page of the next link has arrived.
	// Call NextLink to continue.
	ErrEndOfLink = errors.New("demux: end of link")

	// ErrNotFlacMapping means a header packet is too short or does not carry
	// the FLAC magic.
	ErrNotFlacMapping = errors.New("demux: not an Ogg FLAC stream")

	// ErrUnsupportedMappingVersion means the mapping major version is not 1.
	ErrUnsupportedMappingVersion = errors.New("demux: unsupported Ogg FLAC mapping version")

	// ErrLostSync means the container lost synchronization, either between
	// pages or inside the logical stream. Read may be called again.
	ErrLostSync = errors.New("demux: lost sync")

	// ErrMemoryAllocation means the page buffer would exceed its limit.
	ErrMemoryAllocation = errors.New("demux: page buffer limit exceeded")

	// ErrAborted wraps the error that made the transport give up.
	ErrAborted = errors.New("demux: transport aborted")

	// ErrInternal means the transport broke its contract or an internal
	// invariant failed.
	ErrInternal = errors.New("demux: internal error")

	// ErrClosed is returned by Read after Close.
	ErrClosed = errors.New("demux: closed")

	// ErrLinkTableVersion means a persisted link table uses an unknown
	// encoding version.
	ErrLinkTableVersion = errors.New("demux: unknown link table version")
)
