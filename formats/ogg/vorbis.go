// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/oggflac/audio"
)

// vorbisReader is the part of oggvorbis.Reader the source uses.
type vorbisReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec      vorbisReader
	channels int
	buf      []float32
}

func newVorbisSource(r io.Reader) (*vorbisSource, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ogg: open vorbis stream: %w", err)
	}
	return &vorbisSource{dec: dec, channels: dec.Channels(), buf: make([]float32, 4096)}, nil
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.channels }
func (s *vorbisSource) BufSize() int    { return cap(s.buf) }
func (s *vorbisSource) Close() error    { return nil }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf) < len(dst) {
		s.buf = make([]float32, len(dst))
	}
	s.buf = s.buf[:len(dst)]

	// oggvorbis counts in sample frames, not in samples.
	frames, err := s.dec.Read(s.buf)
	n := frames * s.channels
	copy(dst, s.buf[:n])
	return n, err
}
