package mp3parser

import "fmt"

// Version is the 2-bit MPEG audio version ID.
type Version uint8

const (
	Version25       Version = 0b00
	VersionReserved Version = 0b01
	Version2        Version = 0b10
	Version1        Version = 0b11
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG1"
	case Version2:
		return "MPEG2"
	case Version25:
		return "MPEG2.5"
	default:
		return "Reserved"
	}
}

// Layer is the 2-bit layer description.
type Layer uint8

const (
	LayerReserved Layer = 0b00
	Layer3        Layer = 0b01
	Layer2        Layer = 0b10
	Layer1        Layer = 0b11
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "I"
	case Layer2:
		return "II"
	case Layer3:
		return "III"
	default:
		return "Reserved"
	}
}

// Protection is the protection bit. A zero bit means a CRC follows the header.
type Protection uint8

const (
	ProtectionCRC  Protection = 0
	ProtectionNone Protection = 1
)

func (p Protection) String() string {
	if p == ProtectionCRC {
		return "CRCPresent"
	}
	return "NotProtected"
}

type ChannelMode uint8

const (
	ChannelStereo        ChannelMode = 0b00
	ChannelJointStereo   ChannelMode = 0b01
	ChannelDual          ChannelMode = 0b10
	ChannelSingleChannel ChannelMode = 0b11
)

func (m ChannelMode) String() string {
	switch m {
	case ChannelStereo:
		return "Stereo"
	case ChannelJointStereo:
		return "JointStereo"
	case ChannelDual:
		return "DualChannel"
	case ChannelSingleChannel:
		return "SingleChannel"
	default:
		return fmt.Sprintf("ChannelMode(%d)", uint8(m))
	}
}

// Channels returns the number of audio channels carried in the mode.
func (m ChannelMode) Channels() int {
	if m == ChannelSingleChannel {
		return 1
	}
	return 2
}

// ParseVersion converts raw header bits to a Version. The reserved value is
// returned together with ErrReservedField.
func ParseVersion(raw uint32) (Version, error) {
	if raw > 0b11 {
		return VersionReserved, fmt.Errorf("%w: version bits %d", ErrReservedField, raw)
	}
	v := Version(raw)
	if v == VersionReserved {
		return v, fmt.Errorf("%w: version", ErrReservedField)
	}
	return v, nil
}

// ParseLayer converts raw header bits to a Layer. The reserved value is
// returned together with ErrReservedField.
func ParseLayer(raw uint32) (Layer, error) {
	if raw > 0b11 {
		return LayerReserved, fmt.Errorf("%w: layer bits %d", ErrReservedField, raw)
	}
	l := Layer(raw)
	if l == LayerReserved {
		return l, fmt.Errorf("%w: layer", ErrReservedField)
	}
	return l, nil
}
