// SPDX-License-Identifier: EPL-2.0

package audiotest

import "io"

// SliceSource serves a fixed set of interleaved samples. It satisfies
// audio.Source without importing it.
type SliceSource struct {
	rate     int
	channels int
	samples  []float32
	off      int
}

func NewSliceSource(rate, channels int, samples []float32) *SliceSource {
	return &SliceSource{rate: rate, channels: channels, samples: samples}
}

func (s *SliceSource) SampleRate() int { return s.rate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 1024 }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.off >= len(s.samples) {
		return 0, io.EOF
	}
	n := copy(dst[:len(dst)-len(dst)%s.channels], s.samples[s.off:])
	s.off += n
	if s.off >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}
