package mp3parser

import (
	"fmt"
	"strings"
)

const (
	FrameHeaderSize = 4
	CRCSize         = 2

	frameSync = 0x7FF
)

// Bitrate tables in kbps, indexed by bitrate_index 0..14.
var (
	bitrateV1L1   = [15]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448}
	bitrateV1L2   = [15]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384}
	bitrateV1L3   = [15]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}
	bitrateV2L1   = [15]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256}
	bitrateV2L2L3 = [15]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160}
)

// Sample rate tables in Hz, indexed by sampling_rate_index 0..2.
var (
	sampleRateMPEG1  = [3]int{44100, 48000, 32000}
	sampleRateMPEG2  = [3]int{22050, 24000, 16000}
	sampleRateMPEG25 = [3]int{11025, 12000, 8000}
)

// MP3FrameHeader is the decoded 4-byte MPEG audio frame header. Version and
// Layer may hold their reserved values; Derive rejects them.
type MP3FrameHeader struct {
	Version           Version
	Layer             Layer
	Protection        Protection
	BitrateIndex      uint8
	SamplingRateIndex uint8
	Padding           bool
	Private           bool
	ChannelMode       ChannelMode
	ModeExtension     uint8
	Copyright         bool
	Original          bool
	Emphasis          uint8
}

// DerivedFrameValues are computed from a header by Derive.
type DerivedFrameValues struct {
	Bitrate     int // bits per second
	SampleRate  int // Hz
	FrameLength int // bytes, header included
}

// IsFrameSync reports whether b starts with the 11-bit frame sync pattern.
func IsFrameSync(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && b[1]&0xE0 == 0xE0
}

// DecodeFrameHeader decodes the 4-byte frame header at the start of b.
func DecodeFrameHeader(b []byte) (*MP3FrameHeader, error) {
	if len(b) < FrameHeaderSize {
		return nil, fmt.Errorf("%w: frame header needs %d bytes, have %d", ErrOutOfRange, FrameHeaderSize, len(b))
	}

	c := NewBitCursor(b[:FrameHeaderSize])
	sync := c.Read(11)
	h := &MP3FrameHeader{
		Version:           Version(c.Read(2)),
		Layer:             Layer(c.Read(2)),
		Protection:        Protection(c.Read(1)),
		BitrateIndex:      uint8(c.Read(4)),
		SamplingRateIndex: uint8(c.Read(2)),
		Padding:           c.Flag(),
		Private:           c.Flag(),
		ChannelMode:       ChannelMode(c.Read(2)),
		ModeExtension:     uint8(c.Read(2)),
		Copyright:         c.Flag(),
		Original:          c.Flag(),
		Emphasis:          uint8(c.Read(2)),
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if sync != frameSync {
		return nil, fmt.Errorf("%w: 0x%03X", ErrBadFrameSync, sync)
	}

	return h, nil
}

// Derive validates the header and resolves bitrate, sample rate and frame
// length.
func (h *MP3FrameHeader) Derive() (DerivedFrameValues, error) {
	if _, err := ParseVersion(uint32(h.Version)); err != nil {
		return DerivedFrameValues{}, err
	}
	if _, err := ParseLayer(uint32(h.Layer)); err != nil {
		return DerivedFrameValues{}, err
	}
	if h.BitrateIndex == 0 || h.BitrateIndex >= 15 {
		return DerivedFrameValues{}, fmt.Errorf("%w: %d", ErrInvalidBitrateIndex, h.BitrateIndex)
	}
	if h.SamplingRateIndex >= 3 {
		return DerivedFrameValues{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, h.SamplingRateIndex)
	}

	bitrate := h.bitrateTable()[h.BitrateIndex] * 1000
	sampleRate := h.sampleRateTable()[h.SamplingRateIndex]

	var length int
	switch h.Layer {
	case Layer1:
		length = (12*bitrate/sampleRate + btoi(h.Padding)) * 4
	default:
		length = 144*bitrate/sampleRate + btoi(h.Padding)
	}

	return DerivedFrameValues{
		Bitrate:     bitrate,
		SampleRate:  sampleRate,
		FrameLength: length,
	}, nil
}

// MPEG2 and MPEG2.5 share the V2 bitrate tables.
func (h *MP3FrameHeader) bitrateTable() *[15]int {
	if h.Version == Version1 {
		switch h.Layer {
		case Layer1:
			return &bitrateV1L1
		case Layer2:
			return &bitrateV1L2
		default:
			return &bitrateV1L3
		}
	}
	if h.Layer == Layer1 {
		return &bitrateV2L1
	}
	return &bitrateV2L2L3
}

func (h *MP3FrameHeader) sampleRateTable() *[3]int {
	switch h.Version {
	case Version1:
		return &sampleRateMPEG1
	case Version2:
		return &sampleRateMPEG2
	default:
		return &sampleRateMPEG25
	}
}

// HasCRC reports whether a 16-bit CRC follows the header.
func (h *MP3FrameHeader) HasCRC() bool {
	return h.Protection == ProtectionCRC
}

// SideInfoOffset is the offset of the side information from the frame start.
func (h *MP3FrameHeader) SideInfoOffset() int {
	if h.HasCRC() {
		return FrameHeaderSize + CRCSize
	}
	return FrameHeaderSize
}

// SamplesPerFrame returns the number of PCM samples per channel one frame
// encodes.
func (h *MP3FrameHeader) SamplesPerFrame() int {
	switch h.Layer {
	case Layer1:
		return 384
	case Layer3:
		if h.Version != Version1 {
			return 576
		}
		return 1152
	default:
		return 1152
	}
}

func (h *MP3FrameHeader) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s layer %s %s", h.Version, h.Layer, h.ChannelMode)
	if h.HasCRC() {
		sb.WriteString(" crc")
	}
	if h.Padding {
		sb.WriteString(" padded")
	}
	return sb.String()
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
