package mp3parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	ID3HeaderSize      = 10
	ID3FrameHeaderSize = 10
	id3v1Size          = 128

	id3SupportedMajor = 3
	maxSynchsafe      = 1 << 28

	flagUnsynchronization = 1 << 7
	flagExtendedHeader    = 1 << 6
	flagExperimental      = 1 << 5
	flagReservedMask      = 0x1F
)

var id3Identifier = []byte("ID3")

// DecodeSynchsafe decodes a 4-byte synchsafe integer: the low 7 bits of each
// byte, most significant byte first.
func DecodeSynchsafe(b []byte) (int, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("%w: synchsafe size needs 4 bytes, have %d", ErrOutOfRange, len(b))
	}
	n := 0
	for i := 0; i < 4; i++ {
		if b[i]&0x80 != 0 {
			return 0, fmt.Errorf("%w: byte %d is 0x%02X", ErrInvalidSynchsafeSize, i, b[i])
		}
		v, err := ExtractBits(b, i*8+1, 7)
		if err != nil {
			return 0, err
		}
		n = n<<7 | int(v)
	}
	return n, nil
}

// EncodeSynchsafe is the inverse of DecodeSynchsafe.
func EncodeSynchsafe(n int) ([4]byte, error) {
	var out [4]byte
	if n < 0 || n >= maxSynchsafe {
		return out, fmt.Errorf("%w: %d does not fit in 28 bits", ErrInvalidSynchsafeSize, n)
	}
	out[0] = byte((n >> 21) & 0x7F)
	out[1] = byte((n >> 14) & 0x7F)
	out[2] = byte((n >> 7) & 0x7F)
	out[3] = byte(n & 0x7F)
	return out, nil
}

// HasID3v2 reports whether data starts with an ID3v2 tag identifier.
func HasID3v2(data []byte) bool {
	return bytes.HasPrefix(data, id3Identifier)
}

// DecodeID3Header decodes the 10-byte ID3v2.3 tag header.
func DecodeID3Header(b []byte) (*ID3v2Header, error) {
	if len(b) < ID3HeaderSize {
		return nil, fmt.Errorf("%w: ID3 header needs %d bytes, have %d", ErrOutOfRange, ID3HeaderSize, len(b))
	}
	if !HasID3v2(b) {
		return nil, ErrMissingTag
	}
	if b[3] != id3SupportedMajor {
		return nil, fmt.Errorf("%w: 2.%d", ErrUnsupportedVersion, b[3])
	}

	flags := b[5]
	if flags&flagReservedMask != 0 {
		return nil, fmt.Errorf("%w: 0b%08b", ErrInvalidHeaderFlags, flags)
	}

	size, err := DecodeSynchsafe(b[6:10])
	if err != nil {
		return nil, fmt.Errorf("tag size: %w", err)
	}

	return &ID3v2Header{
		Version:           [2]byte{b[3], b[4]},
		Flags:             flags,
		Size:              size,
		Unsynchronization: flags&flagUnsynchronization != 0,
		ExtendedHeader:    flags&flagExtendedHeader != 0,
		Experimental:      flags&flagExperimental != 0,
	}, nil
}

// DecodeID3Frame decodes the frame whose 10-byte header starts at offset.
func DecodeID3Frame(data []byte, offset int) (ID3Frame, error) {
	if offset < 0 || offset+ID3FrameHeaderSize > len(data) {
		return ID3Frame{}, fmt.Errorf("%w: frame header at %d", ErrOutOfRange, offset)
	}

	id := data[offset : offset+4]
	if !utf8.Valid(id) {
		return ID3Frame{}, fmt.Errorf("%w: frame id % X at %d", ErrInvalidEncoding, id, offset)
	}

	size, err := DecodeSynchsafe(data[offset+4 : offset+8])
	if err != nil {
		return ID3Frame{}, fmt.Errorf("frame %q size: %w", id, err)
	}
	// flags at offset+8..offset+10 are not interpreted

	start := offset + ID3FrameHeaderSize
	if start+size > len(data) {
		return ID3Frame{}, fmt.Errorf("%w: frame %q declares %d bytes at %d, buffer is %d",
			ErrOutOfRange, id, size, offset, len(data))
	}
	content := data[start : start+size]
	if !utf8.Valid(content) {
		return ID3Frame{}, fmt.Errorf("%w: frame %q content", ErrInvalidEncoding, id)
	}

	return ID3Frame{
		ID:      string(id),
		Content: string(content),
		Size:    size,
		Offset:  offset,
	}, nil
}

// WalkID3Frames decodes frames sequentially from offset 10 until the tag
// region ends. It returns the frames and the first offset after the tag.
// Zero-filled padding terminates the walk at the end of the tag region.
func WalkID3Frames(data []byte, header *ID3v2Header) ([]ID3Frame, int, error) {
	end := header.Size + ID3HeaderSize
	offset := ID3HeaderSize
	var frames []ID3Frame

	for offset < end {
		if offset < len(data) && data[offset] == 0 {
			return frames, end, nil
		}
		frame, err := DecodeID3Frame(data, offset)
		if err != nil {
			return frames, offset, err
		}
		frames = append(frames, frame)
		offset += ID3FrameHeaderSize + frame.Size
	}

	return frames, offset, nil
}

// ParseID3v1 decodes a trailing 128-byte ID3v1 tag, or returns nil.
func ParseID3v1(data []byte) *ID3v1Tag {
	if len(data) < id3v1Size {
		return nil
	}
	buf := data[len(data)-id3v1Size:]
	if string(buf[:3]) != "TAG" {
		return nil
	}
	return &ID3v1Tag{
		Title:   trimID3v1(buf[3:33]),
		Artist:  trimID3v1(buf[33:63]),
		Album:   trimID3v1(buf[63:93]),
		Year:    trimID3v1(buf[93:97]),
		Comment: trimID3v1(buf[97:127]),
		Genre:   buf[127],
	}
}

func trimID3v1(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}
