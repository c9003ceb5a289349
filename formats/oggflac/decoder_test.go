// SPDX-License-Identifier: EPL-2.0

package oggflac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/oggflac/audio"
	"github.com/ik5/oggflac/demux"
	"github.com/ik5/oggflac/internal/audiotest"
	"github.com/ik5/oggflac/utils"
)

const linkSamples = 96

// chain builds mono links whose sample at absolute index g is g*7, so a
// sample value identifies its position.
func chain(links int) []byte {
	var data []byte
	for i := range links {
		data = append(data, audiotest.FLACLink(audiotest.LinkSpec{
			Serial:        uint32(i + 1),
			SampleRate:    44100,
			BlockSize:     16,
			FramesPerPage: 2,
			Samples:       audiotest.Ramp(1, linkSamples, i*linkSamples),
		})...)
	}
	return data
}

func sampleAt(g int) float32 {
	return utils.IntToFloat32(int32(g*7), 16)
}

func readAll(t *testing.T, src audio.Source, size int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, size)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestDecoder_SingleLink(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(chain(1)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 || src.Channels() != 1 {
		t.Errorf("format = %d Hz x %d, want 44100 Hz x 1", src.SampleRate(), src.Channels())
	}
	if src.BufSize() != 16 {
		t.Errorf("BufSize() = %d, want 16", src.BufSize())
	}

	got := readAll(t, src, 10)
	if len(got) != linkSamples {
		t.Fatalf("got %d samples, want %d", len(got), linkSamples)
	}
	for i, v := range got {
		if v != sampleAt(i) {
			t.Fatalf("sample %d = %v, want %v", i, v, sampleAt(i))
		}
	}
}

func TestDecoder_ChainedStereoChunked(t *testing.T) {
	t.Parallel()

	var data []byte
	var want []float32
	for i := range 3 {
		samples := audiotest.Ramp(2, 64, i*64)
		data = append(data, audiotest.FLACLink(audiotest.LinkSpec{
			Serial:        uint32(10 + i),
			SampleRate:    48000,
			BlockSize:     32,
			FramesPerPage: 1,
			Samples:       samples,
		})...)
		for j := range 64 {
			want = append(want, utils.IntToFloat32(int32(samples[0][j]), 16), utils.IntToFloat32(int32(samples[1][j]), 16))
		}
	}

	src, err := Decoder{ChunkSize: 7}.Open(audiotest.NewChunkedReader(data, 7))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	got := readAll(t, src, 6)
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if src.Position() != 3*64 {
		t.Errorf("Position() = %d, want 192", src.Position())
	}
	if links := src.Links(); len(links) != 3 || links.TotalSamples() != 192 {
		t.Errorf("Links() = %+v, want 3 links of 64 samples", links)
	}
}

func TestDecoder_DisableChaining(t *testing.T) {
	t.Parallel()

	src, err := Decoder{DisableChaining: true}.Open(bytes.NewReader(chain(3)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := readAll(t, src, 64); len(got) != linkSamples {
		t.Errorf("got %d samples, want only the first link's %d", len(got), linkSamples)
	}
}

func TestDecoder_FormatChange(t *testing.T) {
	t.Parallel()

	data := audiotest.FLACLink(audiotest.LinkSpec{
		Serial: 1, SampleRate: 44100, BlockSize: 16, FramesPerPage: 4,
		Samples: audiotest.Ramp(1, 32, 0),
	})
	data = append(data, audiotest.FLACLink(audiotest.LinkSpec{
		Serial: 2, SampleRate: 48000, BlockSize: 16, FramesPerPage: 4,
		Samples: audiotest.Ramp(2, 32, 0),
	})...)

	src, err := Decoder{}.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	buf := make([]float32, 128)
	n, err := src.ReadSamples(buf)
	if n != 32 || !errors.Is(err, ErrFormatChanged) {
		t.Fatalf("ReadSamples() = %d, %v; want 32, ErrFormatChanged", n, err)
	}
	if src.SampleRate() != 48000 || src.Channels() != 2 {
		t.Errorf("format after change = %d Hz x %d, want 48000 Hz x 2", src.SampleRate(), src.Channels())
	}

	if got := readAll(t, src, 128); len(got) != 64 {
		t.Errorf("second link gave %d samples, want 64", len(got))
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	badVersion := audiotest.NewLinkWriter(1).
		Page(audiotest.FlagEOS, 0, append(audiotest.MappingHeader(2, 0, 0), audiotest.NativeHeader(audiotest.StreamInfo{
			SampleRate: 44100, Channels: 1, BlockSize: 16,
		})...)).
		Bytes()

	tests := []struct {
		name    string
		src     io.Reader
		wantErr error
	}{
		{
			name:    "unsupported mapping version",
			src:     bytes.NewReader(badVersion),
			wantErr: demux.ErrUnsupportedMappingVersion,
		},
		{
			name:    "aborted transport",
			src:     &audiotest.AbortReader{R: bytes.NewReader(chain(1)), After: 30},
			wantErr: audiotest.ErrAbort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Open(tt.src); !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("not ogg", func(t *testing.T) {
		t.Parallel()

		if _, err := (Decoder{}).Open(bytes.NewReader([]byte("RIFF....WAVEfmt "))); err == nil {
			t.Error("Open() error = nil for non-Ogg input")
		}
	})
}

func TestSource_InvalidDstSize(t *testing.T) {
	t.Parallel()

	data := audiotest.FLACLink(audiotest.LinkSpec{
		Serial: 1, SampleRate: 44100, BlockSize: 16, FramesPerPage: 1,
		Samples: audiotest.Ramp(2, 16, 0),
	})
	src, err := Decoder{}.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(3) error = %v, want ErrInvalidDstSize", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := audiotest.FLACLink(audiotest.LinkSpec{
		Serial: 1, SampleRate: 44100, BlockSize: 256, FramesPerPage: 8,
		Samples: audiotest.Ramp(2, 256*64, 0),
	})
	buf := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		src, err := Decoder{}.Open(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
