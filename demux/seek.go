// SPDX-License-Identifier: EPL-2.0

package demux

import (
	"go.uber.org/zap"

	"github.com/ik5/oggflac/internal/ogg"
)

// TargetLink locates a seek target inside a chained stream.
type TargetLink struct {
	SerialNumber            uint32
	LinkNumber              int
	StartByte               int64
	EndByte                 int64
	SamplesInPrecedingLinks uint64
	SamplesThisLink         uint64
}

// TargetLink returns the indexed link containing the absolute sample
// number. ok is false when the sample lies beyond every indexed link.
func (d *Demuxer) TargetLink(sample uint64) (target TargetLink, ok bool) {
	var total uint64
	for i, l := range d.Links() {
		total += l.Samples
		if sample < total {
			return TargetLink{
				SerialNumber:            l.SerialNumber,
				LinkNumber:              i,
				StartByte:               l.StartByte,
				EndByte:                 l.EndByte,
				SamplesInPrecedingLinks: total - l.Samples,
				SamplesThisLink:         l.Samples,
			}, true
		}
	}
	return TargetLink{}, false
}

// SetSeekParameters prepares reading the link of t after the transport was
// positioned at t.StartByte (followed by Flush). Pass nil once the seek is
// done to resume normal link tracking.
func (d *Demuxer) SetSeekParameters(t *TargetLink) {
	if t == nil {
		d.seeking = false
		return
	}
	if d.closed {
		return
	}

	d.packet = ogg.Packet{}
	d.state = stateNeedPage
	d.needSerial = false
	d.current = t.LinkNumber
	d.serial = t.SerialNumber
	d.stream.ResetSerial(t.SerialNumber)
	d.seeking = true

	d.log.Debug("seeking",
		zap.Int("link", t.LinkNumber),
		zap.Uint32("serial", t.SerialNumber),
		zap.Int64("start_byte", t.StartByte),
	)
}
