// SPDX-License-Identifier: EPL-2.0

// Package ogg decodes Ogg files whose first logical stream is FLAC or
// Vorbis.
//
// Probe reads just enough of the input to classify the codec from the
// first page, and Decoder dispatches to the matching decoder:
//
//	file, _ := os.Open("audio.ogg")
//	src, err := ogg.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error, ogg.ErrUnknownCodec for unsupported codecs
//	}
//
// FLAC links are handled by formats/oggflac, Vorbis by
// github.com/jfreymuth/oggvorbis. Both produce interleaved float32 samples
// in [-1, 1].
package ogg
