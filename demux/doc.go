// SPDX-License-Identifier: EPL-2.0

// Package demux adapts a push-based Ogg container to a pull-based FLAC
// reader.
//
// A Demuxer wraps a transport (any io.Reader delivering Ogg FLAC bytes in
// arbitrary chunks) and exposes the native FLAC byte stream through Read.
// Pages are reassembled from whatever chunks the transport delivers,
// packets are split out, and the 9-byte Ogg FLAC identification header is
// stripped from the first packet of every logical stream.
//
// Chained streams (several logical streams back to back) are supported when
// enabled with WithChainedStream. Read then returns ErrEndOfLink between
// links, and the caller advances with NextLink. While reading, the Demuxer
// records the byte span, serial number and sample count of every link in a
// LinkTable that TargetLink and SetSeekParameters use for seeking.
//
// A Demuxer is not safe for concurrent use.
package demux
