package mp3parser

import "fmt"

const maxFieldBytes = 5

// ExtractBits reads length bits starting at bit offset from buf and returns
// them right-aligned. Bit 0 is the most significant bit of buf[0].
// length must be in [1, 32].
func ExtractBits(buf []byte, offset, length int) (uint32, error) {
	if length < 1 || length > 32 {
		return 0, fmt.Errorf("%w: %d bits", ErrUnsupportedFieldWidth, length)
	}
	if offset < 0 {
		return 0, fmt.Errorf("%w: negative bit offset %d", ErrOutOfRange, offset)
	}

	end := offset + length
	startByte := offset / 8
	endByte := (end + 7) / 8
	if endByte-startByte > maxFieldBytes {
		return 0, fmt.Errorf("%w: field spans %d bytes", ErrUnsupportedFieldWidth, endByte-startByte)
	}
	if endByte > len(buf) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrOutOfRange, endByte, len(buf))
	}

	var acc uint64
	for _, b := range buf[startByte:endByte] {
		acc = acc<<8 | uint64(b)
	}
	shift := (8 - end%8) % 8
	acc >>= uint(shift)

	return uint32(acc & (1<<uint(length) - 1)), nil
}

// BitCursor reads consecutive bit fields from a borrowed buffer.
// The first failing read is sticky: later reads return 0 and leave the
// position untouched, and Err reports the failure.
type BitCursor struct {
	buf []byte
	pos int
	err error
}

func NewBitCursor(buf []byte) *BitCursor {
	return &BitCursor{buf: buf}
}

// Read consumes length bits at the current position.
func (c *BitCursor) Read(length int) uint32 {
	if c.err != nil {
		return 0
	}
	v, err := ExtractBits(c.buf, c.pos, length)
	if err != nil {
		c.err = fmt.Errorf("at bit %d: %w", c.pos, err)
		return 0
	}
	c.pos += length
	return v
}

// Flag consumes a single bit and reports whether it is set.
func (c *BitCursor) Flag() bool {
	return c.Read(1) == 1
}

// Pos returns the number of bits consumed so far.
func (c *BitCursor) Pos() int { return c.pos }

// Remaining returns the number of unread bits.
func (c *BitCursor) Remaining() int { return len(c.buf)*8 - c.pos }

func (c *BitCursor) Err() error { return c.err }
