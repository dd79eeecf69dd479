package mp3parser

import "errors"

// Decode error sentinels. Every validation failure wraps exactly one of these.
var (
	ErrMissingTag            = errors.New("mp3: no ID3v2 tag identifier")
	ErrInvalidHeaderFlags    = errors.New("mp3: reserved ID3 header flags set")
	ErrUnsupportedVersion    = errors.New("mp3: unsupported ID3 major version")
	ErrInvalidSynchsafeSize  = errors.New("mp3: invalid synchsafe size")
	ErrInvalidEncoding       = errors.New("mp3: invalid UTF-8 in ID3 frame")
	ErrOutOfRange            = errors.New("mp3: read past end of buffer")
	ErrBadFrameSync          = errors.New("mp3: bad frame sync")
	ErrReservedField         = errors.New("mp3: reserved field value")
	ErrInvalidBitrateIndex   = errors.New("mp3: invalid bitrate index")
	ErrInvalidSampleRate     = errors.New("mp3: invalid sample rate index")
	ErrChecksumMismatch      = errors.New("mp3: checksum mismatch")
	ErrUnsupportedFieldWidth = errors.New("mp3: unsupported bit field width")
	ErrTruncatedFrame        = errors.New("mp3: frame runs past end of buffer")
)
