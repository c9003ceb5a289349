// SPDX-License-Identifier: EPL-2.0

package oggflac

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// SeekSample positions the source so that the next sample frame returned
// is the absolute sample number, counted from the start of the first link.
// The input must be an io.ReadSeeker.
func (s *Source) SeekSample(sample uint64) error {
	rs, ok := s.r.(io.ReadSeeker)
	if !ok {
		return ErrNotSeekable
	}

	if !s.demux.DecodeChainedStream() {
		return s.seekSingle(rs, sample)
	}

	target, ok := s.demux.TargetLink(sample)
	for !ok {
		more, err := s.indexForward()
		if err != nil {
			s.done = true
			return err
		}
		target, ok = s.demux.TargetLink(sample)
		if !ok && !more {
			s.done = true
			return ErrSeekOutOfRange
		}
	}

	s.log.Debug("seek",
		zap.Uint64("sample", sample),
		zap.Int("link", target.LinkNumber),
		zap.Int64("start_byte", target.StartByte),
	)

	if _, err := rs.Seek(target.StartByte, io.SeekStart); err != nil {
		return fmt.Errorf("oggflac: seek: %w", err)
	}
	s.demux.Flush()
	s.demux.SetSeekParameters(&target)
	defer s.demux.SetSeekParameters(nil)

	if err := s.restart(target.SamplesInPrecedingLinks); err != nil {
		return err
	}
	return s.skip(sample - s.position)
}

// seekSingle seeks within an unchained stream: forward by decoding, or
// backwards by rewinding to the start.
func (s *Source) seekSingle(rs io.ReadSeeker, sample uint64) error {
	if sample < s.position || s.done {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("oggflac: seek: %w", err)
		}
		s.demux.Reset()
		if err := s.restart(0); err != nil {
			return err
		}
	}
	return s.skip(sample - s.position)
}

// restart reopens the link the demuxer is positioned on.
func (s *Source) restart(position uint64) error {
	s.done = false
	if err := s.openLink(); err != nil {
		return err
	}
	s.sampleRate = s.linkRate
	s.channels = s.linkChannels
	s.linkStart = position
	s.position = position
	return nil
}

// indexForward reads through the current link without decoding it so that
// its table entry gets completed. more reports whether another link follows.
func (s *Source) indexForward() (more bool, err error) {
	if _, err := io.Copy(io.Discard, s.link); err != nil {
		return false, err
	}
	if !s.link.endOfLink {
		return false, nil
	}

	s.demux.NextLink()
	s.link = &linkReader{d: s.demux, log: s.log}
	return true, nil
}

// skip discards the given number of sample frames and makes sure the
// sample after them exists.
func (s *Source) skip(frames uint64) error {
	for frames > 0 || s.framePos >= len(s.frame) {
		if s.framePos >= len(s.frame) {
			err := s.nextFrame()
			if errors.Is(err, io.EOF) {
				return ErrSeekOutOfRange
			}
			if err != nil {
				return err
			}
			continue
		}

		avail := uint64((len(s.frame) - s.framePos) / s.channels)
		k := min(avail, frames)
		s.framePos += int(k) * s.channels
		s.position += k
		frames -= k
	}
	return nil
}
