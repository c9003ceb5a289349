// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/oggflac/internal/audiotest"
	"github.com/ik5/oggflac/utils"
)

func createFile(t *testing.T) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteSource(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25, 2, -2}

	for _, bitDepth := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%dbit", bitDepth), func(t *testing.T) {
			t.Parallel()

			f := createFile(t)
			frames, err := WriteSource(f, audiotest.NewSliceSource(22050, 2, samples), bitDepth)
			if err != nil {
				t.Fatalf("WriteSource() error = %v", err)
			}
			if frames != len(samples)/2 {
				t.Errorf("WriteSource() frames = %d, want %d", frames, len(samples)/2)
			}

			if _, err := f.Seek(0, 0); err != nil {
				t.Fatal(err)
			}
			dec := gowav.NewDecoder(f)
			pcm, err := dec.FullPCMBuffer()
			if err != nil {
				t.Fatalf("FullPCMBuffer() error = %v", err)
			}

			if dec.SampleRate != 22050 || dec.NumChans != 2 || int(dec.BitDepth) != bitDepth {
				t.Errorf("header = %d Hz x %d @ %d bits", dec.SampleRate, dec.NumChans, dec.BitDepth)
			}
			if len(pcm.Data) != len(samples) {
				t.Fatalf("decoded %d samples, want %d", len(pcm.Data), len(samples))
			}
			for i, x := range samples {
				if want := utils.Float32ToInt(x, bitDepth); pcm.Data[i] != want {
					t.Errorf("sample %d = %d, want %d", i, pcm.Data[i], want)
				}
			}
		})
	}
}

func TestWriteSource_UnsignedEightBit(t *testing.T) {
	t.Parallel()

	f := createFile(t)
	if _, err := WriteSource(f, audiotest.NewSliceSource(8000, 1, []float32{0, 1, -1}), 8); err != nil {
		t.Fatalf("WriteSource() error = %v", err)
	}

	if _, err := f.Seek(44, 0); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 3)
	if _, err := f.Read(got); err != nil {
		t.Fatal(err)
	}
	if want := []byte{128, 255, 1}; string(got) != string(want) {
		t.Errorf("8-bit data = %v, want %v", got, want)
	}
}

func TestWriteSource_Errors(t *testing.T) {
	t.Parallel()

	f := createFile(t)

	if _, err := WriteSource(f, audiotest.NewSliceSource(8000, 1, nil), 12); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("WriteSource(12 bits) error = %v, want ErrUnsupportedBitDepth", err)
	}
	if _, err := WriteSource(f, audiotest.NewSliceSource(8000, 0, nil), 16); !errors.Is(err, ErrNoChannels) {
		t.Errorf("WriteSource(0 channels) error = %v, want ErrNoChannels", err)
	}
}

func TestWriteSource_EmptySource(t *testing.T) {
	t.Parallel()

	f := createFile(t)
	frames, err := WriteSource(f, audiotest.NewSliceSource(8000, 1, nil), 16)
	if err != nil || frames != 0 {
		t.Fatalf("WriteSource() = %d, %v; want 0, nil", frames, err)
	}

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	if !gowav.NewDecoder(f).IsValidFile() {
		t.Error("empty output is not a valid WAV file")
	}
}
