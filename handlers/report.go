package handlers

import (
	"fmt"
	"strings"

	"mp3inspector-backend/models"
	"mp3inspector-backend/mp3parser"
)

// maxReportedFrames caps the per-frame listing of a report. The summary
// still covers every frame.
const maxReportedFrames = 2000

// BuildAnalyzeResponse converts a parsed file into the API report.
func BuildAnalyzeResponse(file *mp3parser.MP3File) models.AnalyzeResponse {
	resp := models.AnalyzeResponse{
		Success:      true,
		Message:      fmt.Sprintf("Parsed %d frames", len(file.Frames)),
		AudioOffset:  file.AudioOffset,
		SkippedBytes: file.SkippedBytes,
		Truncated:    file.Truncated,
		Frames:       []models.FrameInfo{},
	}

	if file.ID3v2 != nil || file.TagErr != nil {
		resp.Tag = tagInfo(file.ID3v2, file.TagErr)
	}
	if v1 := file.ID3v1; v1 != nil {
		resp.ID3v1 = &models.ID3v1Info{
			Title:   v1.Title,
			Artist:  v1.Artist,
			Album:   v1.Album,
			Year:    v1.Year,
			Comment: v1.Comment,
			Genre:   v1.Genre,
		}
	}

	frames := file.Frames
	if len(frames) > maxReportedFrames {
		resp.FramesOmitted = len(frames) - maxReportedFrames
		frames = frames[:maxReportedFrames]
	}
	for _, fr := range frames {
		resp.Frames = append(resp.Frames, frameInfo(fr))
	}

	s := file.Summary()
	resp.Summary = models.SummaryInfo{
		Frames:          s.Frames,
		DurationSeconds: s.Duration.Seconds(),
		AverageBitrate:  s.AverageBitrate,
		ConstantBitrate: s.ConstantBitrate,
		CRCFailures:     s.CRCFailures,
	}
	return resp
}

func tagInfo(tag *mp3parser.ID3v2Tag, tagErr error) *models.TagInfo {
	info := &models.TagInfo{Frames: []models.TagFrameInfo{}}
	if tagErr != nil {
		info.Error = tagErr.Error()
	}
	if tag == nil {
		return info
	}

	h := tag.Header
	info.Version = fmt.Sprintf("2.%d.%d", h.Version[0], h.Version[1])
	info.Size = h.Size
	info.Unsynchronization = h.Unsynchronization
	info.ExtendedHeader = h.ExtendedHeader
	info.Experimental = h.Experimental
	for _, f := range tag.Frames {
		info.Frames = append(info.Frames, models.TagFrameInfo{ID: f.ID, Content: f.Content, Size: f.Size})
	}
	return info
}

// HeaderInfo flattens a header and its derived values for the API.
func HeaderInfo(h *mp3parser.MP3FrameHeader, d mp3parser.DerivedFrameValues) models.FrameHeaderInfo {
	return models.FrameHeaderInfo{
		Version:           h.Version.String(),
		Layer:             h.Layer.String(),
		Protection:        h.Protection.String(),
		BitrateIndex:      h.BitrateIndex,
		SamplingRateIndex: h.SamplingRateIndex,
		Padding:           h.Padding,
		Private:           h.Private,
		ChannelMode:       h.ChannelMode.String(),
		ModeExtension:     h.ModeExtension,
		Copyright:         h.Copyright,
		Original:          h.Original,
		Emphasis:          h.Emphasis,
		Bitrate:           d.Bitrate,
		SampleRate:        d.SampleRate,
		FrameLength:       d.FrameLength,
	}
}

func frameInfo(fr *mp3parser.MP3Frame) models.FrameInfo {
	info := models.FrameInfo{
		Offset: fr.Offset,
		Header: HeaderInfo(fr.Header, fr.Derived),
	}
	if fr.Header.HasCRC() {
		crc := fr.CRC
		info.CRC = &crc
	}
	if fr.CRCErr != nil {
		info.CRCError = fr.CRCErr.Error()
	}
	if fr.SideInfoErr != nil {
		info.SideInfoError = fr.SideInfoErr.Error()
	}
	if si := fr.SideInfo; si != nil {
		info.SideInfo = &models.SideInfo{
			MainDataBegin: si.MainDataBegin,
			PrivateBits:   si.PrivateBits,
			Scfsi:         si.Scfsi,
			Granules:      [2]models.Granule{granuleInfo(si.Granule0), granuleInfo(si.Granule1)},
		}
	}
	return info
}

func granuleInfo(g mp3parser.Granule) models.Granule {
	return models.Granule{
		Part23Length:        g.Part23Length,
		BigValues:           g.BigValues,
		GlobalGain:          g.GlobalGain,
		ScalefacCompress:    g.ScalefacCompress,
		WindowSwitchingFlag: g.WindowSwitchingFlag,
		TableSelect:         g.TableSelect,
		Region0Count:        g.Region0Count,
		Region1Count:        g.Region1Count,
		Preflag:             g.Preflag,
		ScalefacScale:       g.ScalefacScale,
		Count1TableSelect:   g.Count1TableSelect,
	}
}

// referenceTextFrames maps tag fields reported by the reference probe to
// the ID3v2 frame carrying them.
var referenceTextFrames = []struct {
	id    string
	value func(*models.ReferenceInfo) string
}{
	{"TIT2", func(r *models.ReferenceInfo) string { return r.Title }},
	{"TPE1", func(r *models.ReferenceInfo) string { return r.Artist }},
	{"TALB", func(r *models.ReferenceInfo) string { return r.Album }},
}

// CompareReference lists disagreements between our decode and the reference
// probe. Empty reference values are not compared.
func CompareReference(file *mp3parser.MP3File, ref *models.ReferenceInfo) []string {
	var mismatches []string

	if len(file.Frames) > 0 {
		first := file.Frames[0]
		if ref.SampleRate != 0 && ref.SampleRate != first.Derived.SampleRate {
			mismatches = append(mismatches, fmt.Sprintf("sample rate: parsed %d, reference %d", first.Derived.SampleRate, ref.SampleRate))
		}
		if ch := first.Header.ChannelMode.Channels(); ref.Channels != 0 && ref.Channels != ch {
			mismatches = append(mismatches, fmt.Sprintf("channels: parsed %d, reference %d", ch, ref.Channels))
		}
	}

	if file.ID3v2 == nil {
		return mismatches
	}
	parsed := make(map[string]string, len(file.ID3v2.Frames))
	for _, f := range file.ID3v2.Frames {
		if _, seen := parsed[f.ID]; !seen {
			parsed[f.ID] = f.Content
		}
	}
	for _, tf := range referenceTextFrames {
		want := tf.value(ref)
		if want == "" {
			continue
		}
		if got := textValue(parsed[tf.id]); got != want {
			mismatches = append(mismatches, fmt.Sprintf("%s: parsed %q, reference %q", tf.id, got, want))
		}
	}
	return mismatches
}

// textValue drops the text encoding byte and NUL terminators of a raw text
// frame.
func textValue(content string) string {
	if content != "" && content[0] <= 3 {
		content = content[1:]
	}
	return strings.TrimRight(content, "\x00")
}
