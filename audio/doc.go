// SPDX-License-Identifier: EPL-2.0

// Package audio defines the PCM source abstraction shared by the decoders.
//
// # Source Interface
//
// Every decoder produces a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. The length of dst
// must be a multiple of Channels, otherwise ErrInvalidDstSize is returned.
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	ogg.Decoder{}.Register(registry)
//	src, err := registry.Decode("oga", file)
//
// Keys are case insensitive and may carry a leading dot.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. It may return
// n > 0 together with io.EOF:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // Process n samples from buf
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
