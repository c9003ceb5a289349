// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// mockSource produces totalFrames frames of a constant value.
type mockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	value       float32
	closed      bool
}

func newConstantSource(sampleRate, channels, totalFrames int, value float32) *mockSource {
	return &mockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		value:       value,
	}
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	n := frames * m.channels
	for i := range n {
		dst[i] = m.value
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}
	return n, nil
}

// mockDecoder records the reader it was given.
type mockDecoder struct {
	name string
	got  io.Reader
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	d.got = r
	return newConstantSource(48000, 2, 100, 0.5), nil
}
