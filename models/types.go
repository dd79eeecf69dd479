// Package models contain the API request and response types
package models

// ErrorResponse is returned by every endpoint on failure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HeaderRequest asks for a single 4-byte frame header to be decoded
type HeaderRequest struct {
	Header string `json:"header" binding:"required,hexadecimal,len=8"`
}

// HeaderResponse is the decoded header and the values derived from it
type HeaderResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Header  FrameHeaderInfo `json:"header"`
}

// AnalyzeRequest holds the optional form fields of an analysis upload
type AnalyzeRequest struct {
	StrictCRC bool `form:"strict_crc"`
	Reference bool `form:"reference"`
	MaxFrames int  `form:"max_frames" binding:"min=0"`
}

// AnalyzeResponse is the structural report of an MP3 file
type AnalyzeResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Tag           *TagInfo       `json:"id3v2,omitempty"`
	ID3v1         *ID3v1Info     `json:"id3v1,omitempty"`
	AudioOffset   int            `json:"audio_offset"`
	Frames        []FrameInfo    `json:"frames"`
	FramesOmitted int            `json:"frames_omitted,omitempty"`
	SkippedBytes  int            `json:"skipped_bytes"`
	Truncated     bool           `json:"truncated"`
	Summary       SummaryInfo    `json:"summary"`
	Reference     *ReferenceInfo `json:"reference,omitempty"`
	Mismatches    []string       `json:"mismatches,omitempty"`
}

type TagInfo struct {
	Version           string         `json:"version"`
	Size              int            `json:"size"`
	Unsynchronization bool           `json:"unsynchronization"`
	ExtendedHeader    bool           `json:"extended_header"`
	Experimental      bool           `json:"experimental"`
	Frames            []TagFrameInfo `json:"frames"`
	Error             string         `json:"error,omitempty"`
}

type TagFrameInfo struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

type ID3v1Info struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Year    string `json:"year"`
	Comment string `json:"comment"`
	Genre   byte   `json:"genre"`
}

type FrameHeaderInfo struct {
	Version           string `json:"version"`
	Layer             string `json:"layer"`
	Protection        string `json:"protection"`
	BitrateIndex      uint8  `json:"bitrate_index"`
	SamplingRateIndex uint8  `json:"sampling_rate_index"`
	Padding           bool   `json:"padding"`
	Private           bool   `json:"private"`
	ChannelMode       string `json:"channel_mode"`
	ModeExtension     uint8  `json:"mode_extension"`
	Copyright         bool   `json:"copyright"`
	Original          bool   `json:"original"`
	Emphasis          uint8  `json:"emphasis"`
	Bitrate           int    `json:"bitrate"`
	SampleRate        int    `json:"sample_rate"`
	FrameLength       int    `json:"frame_length"`
}

type FrameInfo struct {
	Offset        int             `json:"offset"`
	Header        FrameHeaderInfo `json:"header"`
	CRC           *uint16         `json:"crc,omitempty"`
	CRCError      string          `json:"crc_error,omitempty"`
	SideInfo      *SideInfo       `json:"side_info,omitempty"`
	SideInfoError string          `json:"side_info_error,omitempty"`
}

type SideInfo struct {
	MainDataBegin uint32     `json:"main_data_begin"`
	PrivateBits   uint32     `json:"private_bits"`
	Scfsi         uint32     `json:"scfsi"`
	Granules      [2]Granule `json:"granules"`
}

type Granule struct {
	Part23Length        uint32 `json:"part2_3_length"`
	BigValues           uint32 `json:"big_values"`
	GlobalGain          uint32 `json:"global_gain"`
	ScalefacCompress    uint32 `json:"scalefac_compress"`
	WindowSwitchingFlag uint32 `json:"window_switching_flag"`
	TableSelect         uint32 `json:"table_select"`
	Region0Count        uint32 `json:"region0_count"`
	Region1Count        uint32 `json:"region1_count"`
	Preflag             uint32 `json:"preflag"`
	ScalefacScale       uint32 `json:"scalefac_scale"`
	Count1TableSelect   uint32 `json:"count1table_select"`
}

type SummaryInfo struct {
	Frames          int     `json:"frames"`
	DurationSeconds float64 `json:"duration_seconds"`
	AverageBitrate  int     `json:"average_bitrate"`
	ConstantBitrate bool    `json:"constant_bitrate"`
	CRCFailures     int     `json:"crc_failures"`
}

// ReferenceInfo is what third-party parsers report for the same file
type ReferenceInfo struct {
	Format     string   `json:"format,omitempty"`
	FileType   string   `json:"file_type,omitempty"`
	Title      string   `json:"title,omitempty"`
	Artist     string   `json:"artist,omitempty"`
	Album      string   `json:"album,omitempty"`
	Year       string   `json:"year,omitempty"`
	Genre      string   `json:"genre,omitempty"`
	SampleRate int      `json:"sample_rate,omitempty"`
	Channels   int      `json:"channels,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}
