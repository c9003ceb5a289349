// SPDX-License-Identifier: EPL-2.0

// Package ogg implements the push-based page accumulator (Sync) and the
// per-logical-stream packet extractor (Stream) of the Ogg container.
//
// The model follows libogg: raw transport bytes are written into a Sync,
// which yields whole pages once their capture pattern, segment table, body
// and CRC have all arrived. Pages belonging to the selected serial number are
// submitted to a Stream, which reassembles packets split across segments and
// pages.
//
// Pages and packets are borrowed views. A Page stays valid until the next
// Sync.Buffer or Sync.Reset call; a Packet stays valid until the next
// Stream.PageIn, Stream.Reset or Stream.ResetSerial call. Callers that need
// the bytes longer must copy them.
package ogg
