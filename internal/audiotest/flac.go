// SPDX-License-Identifier: EPL-2.0

package audiotest

import "encoding/binary"

// MappingHeaderSize is the length of the Ogg FLAC identification header.
const MappingHeaderSize = 9

// MappingHeader returns the identification header that prefixes the first
// packet of an Ogg FLAC link.
func MappingHeader(major, minor byte, headers uint16) []byte {
	h := []byte{0x7F, 'F', 'L', 'A', 'C', major, minor, 0, 0}
	binary.BigEndian.PutUint16(h[7:], headers)
	return h
}

// StreamInfo describes a 16-bit test stream.
type StreamInfo struct {
	SampleRate   int
	Channels     int
	BlockSize    int
	TotalSamples uint64
}

// NativeHeader returns the "fLaC" marker and a STREAMINFO block flagged as
// the last metadata block.
func NativeHeader(si StreamInfo) []byte {
	b := make([]byte, 0, 42)
	b = append(b, "fLaC"...)
	b = append(b, 0x80, 0, 0, 34)

	var block [34]byte
	binary.BigEndian.PutUint16(block[0:2], uint16(si.BlockSize))
	binary.BigEndian.PutUint16(block[2:4], uint16(si.BlockSize))
	packed := uint64(si.SampleRate)<<44 |
		uint64(si.Channels-1)<<41 |
		uint64(16-1)<<36 |
		si.TotalSamples&(1<<36-1)
	binary.BigEndian.PutUint64(block[10:18], packed)
	return append(b, block[:]...)
}

var rateCodes = map[int]byte{
	8000: 0x4, 16000: 0x5, 22050: 0x6, 24000: 0x7,
	32000: 0x8, 44100: 0x9, 48000: 0xA, 96000: 0xB,
}

func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Frame encodes one fixed-blocksize FLAC frame of 16-bit verbatim
// subframes, one slice of samples per channel. frameNum must be below 128
// and every channel must hold between 1 and 256 samples.
func Frame(frameNum, sampleRate int, channels [][]int16) []byte {
	n := len(channels[0])
	f := []byte{
		0xFF, 0xF8,
		0x60 | rateCodes[sampleRate],
		byte(len(channels)-1)<<4 | 0x08,
		byte(frameNum),
		byte(n - 1),
	}
	f = append(f, crc8(f))
	for _, ch := range channels {
		f = append(f, 0x02)
		for _, s := range ch {
			f = binary.BigEndian.AppendUint16(f, uint16(s))
		}
	}
	return binary.BigEndian.AppendUint16(f, crc16(f))
}

// LinkSpec describes one Ogg FLAC link to generate.
type LinkSpec struct {
	Serial        uint32
	SampleRate    int
	BlockSize     int
	FramesPerPage int
	// Samples holds one equally sized slice per channel.
	Samples [][]int16
}

// FLACLink encodes spec as a complete link: a BOS page carrying the
// identification and STREAMINFO packet, then frame pages, the last one
// flagged end-of-stream with the total sample count as granule.
func FLACLink(spec LinkSpec) []byte {
	total := len(spec.Samples[0])
	si := StreamInfo{
		SampleRate:   spec.SampleRate,
		Channels:     len(spec.Samples),
		BlockSize:    spec.BlockSize,
		TotalSamples: uint64(total),
	}
	w := NewLinkWriter(spec.Serial)
	w.Page(0, 0, append(MappingHeader(1, 0, 0), NativeHeader(si)...))

	var frames [][]byte
	var ends []int
	for start := 0; start < total; start += spec.BlockSize {
		end := min(start+spec.BlockSize, total)
		block := make([][]int16, len(spec.Samples))
		for ch := range spec.Samples {
			block[ch] = spec.Samples[ch][start:end]
		}
		frames = append(frames, Frame(len(frames), spec.SampleRate, block))
		ends = append(ends, end)
	}

	perPage := max(spec.FramesPerPage, 1)
	for i := 0; i < len(frames); i += perPage {
		j := min(i+perPage, len(frames))
		var flags byte
		if j == len(frames) {
			flags = FlagEOS
		}
		w.Page(flags, int64(ends[j-1]), frames[i:j]...)
	}
	return w.Bytes()
}

// Ramp returns n samples per channel forming distinct ramps, handy for
// spotting misplaced samples.
func Ramp(channels, n, offset int) [][]int16 {
	out := make([][]int16, channels)
	for ch := range out {
		out[ch] = make([]int16, n)
		for i := range n {
			out[ch][i] = int16((offset+i)*7 + ch*1000)
		}
	}
	return out
}
