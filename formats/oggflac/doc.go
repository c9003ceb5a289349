// SPDX-License-Identifier: EPL-2.0

// Package oggflac decodes Ogg FLAC files, including chained ones, into
// audio.Source samples.
//
// The Ogg container is taken apart by the demux package; the native FLAC
// stream of every link is decoded with github.com/mewkiz/flac.
//
// # Decoding
//
//	file, _ := os.Open("audio.oga")
//	src, err := oggflac.Decoder{}.Open(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are interleaved float32 values in [-1, 1], scaled by the bit
// depth of the link they come from.
//
// # Chained Files
//
// Links are played back to back. When a link differs from the previous one
// in sample rate or channel count, ReadSamples returns the samples of the
// old link together with ErrFormatChanged; SampleRate and Channels then
// describe the new link.
//
// # Seeking
//
// When the input is an io.ReadSeeker, SeekSample positions the source on an
// absolute sample number counted across all links. Links are indexed as
// they are read, and the index can be persisted through Links and reused
// with Decoder.Links.
package oggflac
