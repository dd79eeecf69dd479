package mp3parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// bitWriter packs MSB-first fields, the inverse of BitCursor.
type bitWriter struct {
	buf []byte
	pos int
}

func (w *bitWriter) write(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.pos/8 >= len(w.buf) {
			w.buf = append(w.buf, 0)
		}
		if (v>>uint(i))&1 == 1 {
			w.buf[w.pos/8] |= 0x80 >> uint(w.pos%8)
		}
		w.pos++
	}
}

func (w *bitWriter) bytes(size int) []byte {
	out := make([]byte, size)
	copy(out, w.buf)
	return out
}

type tagFrame struct {
	id      string
	content string
}

func buildTag(t *testing.T, frames []tagFrame, padding int) []byte {
	t.Helper()

	var body []byte
	for _, f := range frames {
		size, err := EncodeSynchsafe(len(f.content))
		require.NoError(t, err)
		body = append(body, f.id...)
		body = append(body, size[:]...)
		body = append(body, 0, 0)
		body = append(body, f.content...)
	}
	body = append(body, make([]byte, padding)...)

	size, err := EncodeSynchsafe(len(body))
	require.NoError(t, err)
	tag := []byte{'I', 'D', '3', 3, 0, 0}
	tag = append(tag, size[:]...)
	return append(tag, body...)
}

// buildFrame returns a zero-filled frame of the length the header derives.
func buildFrame(t *testing.T, header ...byte) []byte {
	t.Helper()

	h, err := DecodeFrameHeader(header)
	require.NoError(t, err)
	d, err := h.Derive()
	require.NoError(t, err)

	frame := make([]byte, d.FrameLength)
	copy(frame, header)
	return frame
}

// setMatchingCRC picks the last two frame bytes so that the checksum over
// the whole frame equals the embedded value.
func setMatchingCRC(t *testing.T, frame []byte, embedded uint16) {
	t.Helper()

	frame[4] = byte(embedded >> 8)
	frame[5] = byte(embedded)
	n := len(frame)
	for x := 0; x <= 0xFFFF; x++ {
		frame[n-2] = byte(x >> 8)
		frame[n-1] = byte(x)
		if Checksum(frame) == embedded {
			return
		}
	}
	t.Fatal("no trailing value produces a matching checksum")
}

// setMismatchingCRC stores an embedded value the checksum does not equal.
func setMismatchingCRC(t *testing.T, frame []byte) {
	t.Helper()

	for v := 0; v <= 0xFFFF; v++ {
		frame[4] = byte(v >> 8)
		frame[5] = byte(v)
		if Checksum(frame) != uint16(v) {
			return
		}
	}
	t.Fatal("every embedded value matched")
}
