// SPDX-License-Identifier: EPL-2.0

// Package oggflac decodes FLAC audio carried in Ogg containers, including
// chained files made of several concatenated logical streams.
//
// # Quick Start
//
// The simplest way to use the package is ConvertToWAV:
//
//	in, _ := os.Open("input.oga")
//	out, _ := os.Create("output.wav")
//
//	summary, err := oggflac.ConvertToWAV(out, in, 16)
//	// summary.Codec, summary.SampleRate, summary.Frames ...
//
// Ogg Vorbis input is accepted too; the codec is detected from the first
// page.
//
// # Packages
//
// The work is split across the subpackages:
//   - demux turns an Ogg FLAC byte stream into the native FLAC byte stream
//     of each link, tracking link offsets for seeking
//   - formats/oggflac decodes that stream into an audio.Source
//   - formats/ogg probes the codec of an Ogg file and dispatches to the
//     right decoder
//   - formats/wav writes any audio.Source as PCM WAV
//   - audio holds the Source interface and the format registry
//
// # Chained Streams
//
// A chained file holds several links one after another. By default every
// link is decoded in order; Converter.Decoder.FLAC.DisableChaining stops
// after the first one. All links must share the sample rate and channel
// count of the first, otherwise decoding stops with
// formats/oggflac.ErrFormatChanged.
package oggflac
