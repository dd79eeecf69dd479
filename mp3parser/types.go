package mp3parser

import "time"

// ID3v2Header represents the ID3v2 tag header
type ID3v2Header struct {
	Version           [2]byte // major, minor
	Flags             byte
	Size              int // tag payload, excluding the 10-byte header
	Unsynchronization bool
	ExtendedHeader    bool
	Experimental      bool
}

// ID3Frame is one text frame of an ID3v2 tag
type ID3Frame struct {
	ID      string
	Content string
	Size    int
	Offset  int
}

// ID3v2Tag is a decoded tag header and the frames walked from it
type ID3v2Tag struct {
	Header *ID3v2Header
	Frames []ID3Frame
	End    int // first byte after the tag region
}

// ID3v1Tag represents ID3v1 tag (128 bytes at end of file)
type ID3v1Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Genre   byte
}

// MP3Frame represents a complete MP3 frame
type MP3Frame struct {
	Offset      int
	Header      *MP3FrameHeader
	Derived     DerivedFrameValues
	HeaderBytes []byte // Original 4-byte header - NEVER MODIFY
	CRC         uint16 // embedded value, only when Header.HasCRC()
	CRCErr      error
	SideInfo    *SideInformation // Layer III only
	SideInfoErr error
	Data        []byte // side information onwards, up to the next frame
}

// MP3File represents the structure of an MP3 file
type MP3File struct {
	ID3v2        *ID3v2Tag
	TagErr       error
	AudioOffset  int
	Frames       []*MP3Frame
	ID3v1        *ID3v1Tag
	SkippedBytes int
	Truncated    bool // a frame ran past the end of data and no frame followed it
}

// Summary aggregates per-frame values of a parsed file.
type Summary struct {
	Frames          int
	Duration        time.Duration
	AverageBitrate  int
	ConstantBitrate bool
	CRCFailures     int
}

func (f *MP3File) Summary() Summary {
	s := Summary{Frames: len(f.Frames), ConstantBitrate: len(f.Frames) > 0}
	if len(f.Frames) == 0 {
		return s
	}

	var seconds float64
	var bitrateSum int
	first := f.Frames[0].Derived.Bitrate
	for _, fr := range f.Frames {
		seconds += float64(fr.Header.SamplesPerFrame()) / float64(fr.Derived.SampleRate)
		bitrateSum += fr.Derived.Bitrate
		if fr.Derived.Bitrate != first {
			s.ConstantBitrate = false
		}
		if fr.CRCErr != nil {
			s.CRCFailures++
		}
	}
	s.Duration = time.Duration(seconds * float64(time.Second))
	s.AverageBitrate = bitrateSum / len(f.Frames)
	return s
}
