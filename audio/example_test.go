// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/oggflac/audio"
	"github.com/ik5/oggflac/internal/audiotest"
)

type exampleDecoder struct{}

func (exampleDecoder) Decode(r io.Reader) (audio.Source, error) {
	return audiotest.NewSliceSource(16000, 1, make([]float32, 1000)), nil
}

// Example_registry demonstrates the format registry.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("ogg", exampleDecoder{})
	registry.Register(".OGA", exampleDecoder{})

	fmt.Println("Formats:", registry.Formats())

	src, err := registry.Decode("oga", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer src.Close()
	fmt.Printf("Decoded: %d Hz, %d channel(s)\n", src.SampleRate(), src.Channels())

	_, err = registry.Decode("mp3", nil)
	fmt.Println("mp3 unknown:", errors.Is(err, audio.ErrUnknownFormat))
	// Output:
	// Formats: [oga ogg]
	// Decoded: 16000 Hz, 1 channel(s)
	// mp3 unknown: true
}

// Example_readLoop shows how a Source is drained.
func Example_readLoop() {
	source := audiotest.NewSliceSource(8000, 2, make([]float32, 5000))
	buf := make([]float32, 1024)

	total, reads := 0, 0
	for {
		n, err := source.ReadSamples(buf)
		if n > 0 {
			reads++
			total += n
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Printf("Read %d frames in %d calls\n", total/source.Channels(), reads)
	// Output:
	// Read 2500 frames in 5 calls
}
