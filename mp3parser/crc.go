package mp3parser

import (
	"encoding/binary"
	"fmt"

	"github.com/sigurn/crc16"
)

var x25Table = crc16.MakeTable(crc16.CRC16_X_25)

// Checksum computes CRC-16/X-25 over b.
func Checksum(b []byte) uint16 {
	return crc16.Checksum(b, x25Table)
}

// EmbeddedCRC returns the big-endian CRC stored after the header of frame.
func EmbeddedCRC(frame []byte) (uint16, error) {
	if len(frame) < FrameHeaderSize+CRCSize {
		return 0, fmt.Errorf("%w: CRC needs %d bytes, have %d", ErrOutOfRange, FrameHeaderSize+CRCSize, len(frame))
	}
	return binary.BigEndian.Uint16(frame[FrameHeaderSize:]), nil
}

// VerifyCRC checks the embedded CRC of a protected frame. frame starts at the
// header; the checksum covers FrameLength bytes from the frame start, header
// included. Unprotected frames always verify.
func VerifyCRC(frame []byte, h *MP3FrameHeader, d DerivedFrameValues) error {
	if !h.HasCRC() {
		return nil
	}
	want, err := EmbeddedCRC(frame)
	if err != nil {
		return err
	}
	if d.FrameLength > len(frame) {
		return fmt.Errorf("%w: CRC range %d bytes, have %d", ErrOutOfRange, d.FrameLength, len(frame))
	}
	if got := Checksum(frame[:d.FrameLength]); got != want {
		return fmt.Errorf("%w: computed 0x%04X, embedded 0x%04X", ErrChecksumMismatch, got, want)
	}
	return nil
}
