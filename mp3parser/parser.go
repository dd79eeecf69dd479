// Package mp3parser decodes the structure of MP3 files: the ID3v2 tag, frame
// headers and Layer III side information.
package mp3parser

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Options control a Parser scan.
type Options struct {
	// StrictCRC aborts the scan on the first checksum mismatch instead of
	// recording it on the frame.
	StrictCRC bool
	// MaxFrames stops the scan after that many frames. Zero means no limit.
	MaxFrames int
	Logger    log.FieldLogger
}

type Parser struct {
	opts Options
	log  log.FieldLogger
}

func NewParser(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Parser{opts: opts, log: logger}
}

// ParseMP3File parses an entire MP3 file with default options
func ParseMP3File(data []byte) (*MP3File, error) {
	return NewParser(Options{}).Parse(data)
}

// ParseFrameAt decodes the frame whose header starts at offset. CRC and side
// information failures are recorded on the frame, not returned.
func ParseFrameAt(data []byte, offset int) (*MP3Frame, error) {
	if offset < 0 || offset > len(data) {
		return nil, fmt.Errorf("%w: frame offset %d", ErrOutOfRange, offset)
	}
	header, err := DecodeFrameHeader(data[offset:])
	if err != nil {
		return nil, err
	}
	derived, err := header.Derive()
	if err != nil {
		return nil, err
	}
	if offset+derived.FrameLength > len(data) {
		return nil, fmt.Errorf("%w: %d bytes at %d, buffer is %d",
			ErrTruncatedFrame, derived.FrameLength, offset, len(data))
	}

	raw := data[offset : offset+derived.FrameLength]
	frame := &MP3Frame{
		Offset:      offset,
		Header:      header,
		Derived:     derived,
		HeaderBytes: raw[:FrameHeaderSize],
	}
	if header.SideInfoOffset() <= len(raw) {
		frame.Data = raw[header.SideInfoOffset():]
	}

	if header.HasCRC() {
		frame.CRC, frame.CRCErr = EmbeddedCRC(raw)
		if frame.CRCErr == nil {
			frame.CRCErr = VerifyCRC(raw, header, derived)
		}
	}

	if header.Layer == Layer3 {
		si, err := DecodeSideInformation(frame.Data, header.ChannelMode)
		if err != nil {
			frame.SideInfoErr = err
		} else {
			frame.SideInfo = &si
		}
	}

	return frame, nil
}

// Parse reads the ID3v2 tag, if any, then scans the rest of data for frames.
func (p *Parser) Parse(data []byte) (*MP3File, error) {
	file := &MP3File{}
	end := len(data)

	if v1 := ParseID3v1(data); v1 != nil {
		file.ID3v1 = v1
		end -= id3v1Size
	}

	if HasID3v2(data) {
		file.ID3v2, file.AudioOffset, file.TagErr = p.parseTag(data)
		if file.TagErr != nil {
			p.log.WithError(file.TagErr).Warn("ID3v2 tag could not be fully decoded")
		}
	}

	scan := data[:end]
	offset := file.AudioOffset
	for offset+FrameHeaderSize <= end {
		if p.opts.MaxFrames > 0 && len(file.Frames) >= p.opts.MaxFrames {
			break
		}
		if !IsFrameSync(scan[offset:]) {
			file.SkippedBytes++
			offset++
			continue
		}

		frame, err := ParseFrameAt(scan, offset)
		if errors.Is(err, ErrTruncatedFrame) {
			// a false sync can declare a length past the end; only a
			// truncation with no frame after it is final
			p.log.WithField("offset", offset).Debug("frame runs past end of data")
			file.Truncated = true
			file.SkippedBytes++
			offset++
			continue
		}
		if err != nil {
			p.log.WithError(err).WithField("offset", offset).Trace("skipping byte")
			file.SkippedBytes++
			offset++
			continue
		}
		if frame.CRCErr != nil && p.opts.StrictCRC {
			return file, fmt.Errorf("frame at %d: %w", offset, frame.CRCErr)
		}

		p.log.WithFields(log.Fields{
			"offset":  offset,
			"header":  frame.Header.String(),
			"bitrate": frame.Derived.Bitrate,
			"length":  frame.Derived.FrameLength,
		}).Debug("frame")

		file.Truncated = false
		file.Frames = append(file.Frames, frame)
		offset += frame.Derived.FrameLength
	}

	return file, nil
}

// parseTag decodes the tag and returns the offset where audio starts. On
// failure the offset is still advanced past the tag whenever its size is
// readable.
func (p *Parser) parseTag(data []byte) (*ID3v2Tag, int, error) {
	header, err := DecodeID3Header(data)
	if err != nil {
		start := 0
		if len(data) >= ID3HeaderSize {
			if size, serr := DecodeSynchsafe(data[6:10]); serr == nil {
				start = size + ID3HeaderSize
			}
		}
		return nil, start, fmt.Errorf("ID3v2 header: %w", err)
	}

	frames, next, err := WalkID3Frames(data, header)
	tag := &ID3v2Tag{Header: header, Frames: frames, End: header.Size + ID3HeaderSize}
	if err != nil {
		return tag, tag.End, fmt.Errorf("ID3v2 frames: %w", err)
	}

	p.log.WithFields(log.Fields{
		"size":   header.Size,
		"frames": len(frames),
	}).Debug("ID3v2 tag")

	tag.End = next
	return tag, next, nil
}
