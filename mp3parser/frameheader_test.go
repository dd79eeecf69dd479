package mp3parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrameHeaderMPEG1Layer3(t *testing.T) {
	t.Parallel()

	h, err := DecodeFrameHeader([]byte{0xFF, 0xFB, 0x90, 0x64})
	require.NoError(t, err)

	assert.Equal(t, &MP3FrameHeader{
		Version:           Version1,
		Layer:             Layer3,
		Protection:        ProtectionNone,
		BitrateIndex:      9,
		SamplingRateIndex: 0,
		ChannelMode:       ChannelJointStereo,
		ModeExtension:     2,
		Original:          true,
	}, h)

	d, err := h.Derive()
	require.NoError(t, err)
	assert.Equal(t, DerivedFrameValues{Bitrate: 128000, SampleRate: 44100, FrameLength: 417}, d)
	assert.Equal(t, FrameHeaderSize, h.SideInfoOffset())
	assert.Equal(t, 1152, h.SamplesPerFrame())
}

func TestDeriveFrameLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     []byte
		version    Version
		layer      Layer
		bitrate    int
		sampleRate int
		length     int
	}{
		{"mpeg1 layer3 padded", []byte{0xFF, 0xFB, 0x92, 0x64}, Version1, Layer3, 128000, 44100, 418},
		{"mpeg1 layer1", []byte{0xFF, 0xFF, 0xC0, 0x00}, Version1, Layer1, 384000, 44100, 416},
		{"mpeg1 layer2", []byte{0xFF, 0xFD, 0xE4, 0x00}, Version1, Layer2, 384000, 48000, 1152},
		{"mpeg2 layer1", []byte{0xFF, 0xF7, 0xE4, 0x00}, Version2, Layer1, 256000, 24000, 512},
		{"mpeg2 layer3", []byte{0xFF, 0xF3, 0x80, 0x00}, Version2, Layer3, 64000, 22050, 417},
		{"mpeg2.5 layer3", []byte{0xFF, 0xE3, 0x88, 0x00}, Version25, Layer3, 64000, 8000, 1152},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := DecodeFrameHeader(tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.version, h.Version)
			assert.Equal(t, tt.layer, h.Layer)

			d, err := h.Derive()
			require.NoError(t, err)
			assert.Equal(t, tt.bitrate, d.Bitrate)
			assert.Equal(t, tt.sampleRate, d.SampleRate)
			assert.Equal(t, tt.length, d.FrameLength)
		})
	}
}

func TestDeriveRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   error
	}{
		{"reserved layer", []byte{0xFF, 0xF9, 0x90, 0x64}, ErrReservedField},
		{"reserved layer with bad indices", []byte{0xFF, 0xF9, 0xFC, 0x64}, ErrReservedField},
		{"reserved version", []byte{0xFF, 0xEB, 0x90, 0x64}, ErrReservedField},
		{"free format bitrate", []byte{0xFF, 0xFB, 0x00, 0x64}, ErrInvalidBitrateIndex},
		{"bad bitrate", []byte{0xFF, 0xFB, 0xF0, 0x64}, ErrInvalidBitrateIndex},
		{"reserved sample rate", []byte{0xFF, 0xFB, 0x9C, 0x64}, ErrInvalidSampleRate},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := DecodeFrameHeader(tt.header)
			require.NoError(t, err)

			_, err = h.Derive()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeFrameHeaderBadSync(t *testing.T) {
	t.Parallel()

	_, err := DecodeFrameHeader([]byte{0xFF, 0x1B, 0x90, 0x64})
	assert.ErrorIs(t, err, ErrBadFrameSync)

	_, err = DecodeFrameHeader([]byte{0x7F, 0xFB, 0x90, 0x64})
	assert.ErrorIs(t, err, ErrBadFrameSync)

	_, err = DecodeFrameHeader([]byte{0xFF, 0xFB, 0x90})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecodeFrameHeaderFlags(t *testing.T) {
	t.Parallel()

	// CRC present, padding, private, mono, copyright, emphasis 0b01
	h, err := DecodeFrameHeader([]byte{0xFF, 0xFA, 0x93, 0xC9})
	require.NoError(t, err)
	assert.Equal(t, ProtectionCRC, h.Protection)
	assert.True(t, h.HasCRC())
	assert.True(t, h.Padding)
	assert.True(t, h.Private)
	assert.Equal(t, ChannelSingleChannel, h.ChannelMode)
	assert.Equal(t, 1, h.ChannelMode.Channels())
	assert.True(t, h.Copyright)
	assert.False(t, h.Original)
	assert.Equal(t, uint8(1), h.Emphasis)
	assert.Equal(t, FrameHeaderSize+CRCSize, h.SideInfoOffset())
	assert.Equal(t, "MPEG1 layer III SingleChannel crc padded", h.String())
}

func TestDecodeFrameHeaderIdempotent(t *testing.T) {
	t.Parallel()

	buf := []byte{0xFF, 0xFB, 0x90, 0x64}
	a, err := DecodeFrameHeader(buf)
	require.NoError(t, err)
	b, err := DecodeFrameHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	da, err := a.Derive()
	require.NoError(t, err)
	db, err := b.Derive()
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestParseVersionAndLayer(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion(0b11)
	require.NoError(t, err)
	assert.Equal(t, Version1, v)

	_, err = ParseVersion(0b01)
	assert.ErrorIs(t, err, ErrReservedField)

	_, err = ParseVersion(7)
	assert.ErrorIs(t, err, ErrReservedField)

	l, err := ParseLayer(0b10)
	require.NoError(t, err)
	assert.Equal(t, Layer2, l)

	_, err = ParseLayer(0)
	assert.ErrorIs(t, err, ErrReservedField)
}

func TestIsFrameSync(t *testing.T) {
	t.Parallel()

	assert.True(t, IsFrameSync([]byte{0xFF, 0xE0}))
	assert.True(t, IsFrameSync([]byte{0xFF, 0xFB, 0x90}))
	assert.False(t, IsFrameSync([]byte{0xFF, 0xC0}))
	assert.False(t, IsFrameSync([]byte{0xFF}))
}
