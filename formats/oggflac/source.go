// SPDX-License-Identifier: EPL-2.0

package oggflac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"go.uber.org/zap"

	"github.com/ik5/oggflac/audio"
	"github.com/ik5/oggflac/demux"
	"github.com/ik5/oggflac/utils"
)

// Source is the decoded PCM of an Ogg FLAC stream.
type Source struct {
	r     io.Reader
	log   *zap.Logger
	demux *demux.Demuxer
	link  *linkReader

	stream       *flac.Stream
	linkRate     int
	linkChannels int
	bitDepth     int

	// sampleRate and channels describe the samples ReadSamples returns.
	sampleRate int
	channels   int

	frame    []float32 // interleaved samples of the current FLAC frame
	framePos int

	// position counts sample frames delivered, across links.
	position uint64
	// linkStart is the position of the first sample of the current link.
	linkStart uint64
	done      bool
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }

// BufSize is the number of interleaved samples in one FLAC block of the
// current link.
func (s *Source) BufSize() int {
	if s.stream == nil {
		return 0
	}
	return int(s.stream.Info.BlockSizeMax) * s.channels
}

// BitDepth is the bit depth of the current link.
func (s *Source) BitDepth() int { return s.bitDepth }

// Position is the number of sample frames delivered so far.
func (s *Source) Position() uint64 { return s.position }

// Links returns the links indexed so far.
func (s *Source) Links() demux.LinkTable { return s.demux.Links() }

func (s *Source) Close() error {
	s.stream = nil
	s.frame = nil
	s.done = true
	return s.demux.Close()
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) {
		if s.framePos >= len(s.frame) {
			if err := s.nextFrame(); err != nil {
				return n, err
			}
			continue
		}

		c := copy(dst[n:], s.frame[s.framePos:])
		s.framePos += c
		n += c
		s.position += uint64(c / s.channels)
	}
	return n, nil
}

// nextFrame decodes the next FLAC frame, moving on to the next link when
// the current one is exhausted.
func (s *Source) nextFrame() error {
	for {
		if s.done {
			return io.EOF
		}

		f, err := s.stream.ParseNext()
		if err == nil {
			s.load(f)
			return nil
		}
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("oggflac: decode link %d: %w", s.demux.CurrentLink(), s.link.cause(err))
		}
		if !s.link.endOfLink {
			s.done = true
			return io.EOF
		}

		s.demux.NextLink()
		s.linkStart = s.position
		if err := s.openLink(); err != nil {
			return err
		}
		if s.linkRate != s.sampleRate || s.linkChannels != s.channels {
			s.log.Info("format changed",
				zap.Int("link", s.demux.CurrentLink()),
				zap.Int("sample_rate", s.linkRate),
				zap.Int("channels", s.linkChannels),
			)
			s.sampleRate = s.linkRate
			s.channels = s.linkChannels
			return ErrFormatChanged
		}
	}
}

// load converts a frame into interleaved float32 samples.
func (s *Source) load(f *frame.Frame) {
	blockSize := int(f.BlockSize)
	need := blockSize * len(f.Subframes)
	if cap(s.frame) < need {
		s.frame = make([]float32, need)
	}
	s.frame = s.frame[:need]
	s.framePos = 0

	for ch, sub := range f.Subframes {
		for i := range blockSize {
			s.frame[i*len(f.Subframes)+ch] = utils.IntToFloat32(sub.Samples[i], s.bitDepth)
		}
	}
}

// openLink parses the native FLAC headers of the current link.
func (s *Source) openLink() error {
	s.link = &linkReader{d: s.demux, log: s.log}
	s.frame = s.frame[:0]
	s.framePos = 0

	stream, err := flac.New(s.link)
	if err != nil {
		return fmt.Errorf("oggflac: open link %d: %w", s.demux.CurrentLink(), s.link.cause(err))
	}

	s.stream = stream
	s.linkRate = int(stream.Info.SampleRate)
	s.linkChannels = int(stream.Info.NChannels)
	s.bitDepth = int(stream.Info.BitsPerSample)

	s.log.Debug("link opened",
		zap.Int("link", s.demux.CurrentLink()),
		zap.Uint32("serial", s.demux.SerialNumber()),
		zap.Int("sample_rate", s.linkRate),
		zap.Int("channels", s.linkChannels),
		zap.Int("bit_depth", s.bitDepth),
		zap.Uint64("samples", stream.Info.NSamples),
	)
	return nil
}
