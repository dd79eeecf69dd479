package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"

	"mp3inspector-backend/models"
)

// ProbeTags fills the container format (dhowden/tag) and the common text
// frames (bogem/id3v2).
func (p *ReferenceProbe) ProbeTags(mp3Data []byte, info *models.ReferenceInfo) error {
	format, fileType, err := tag.Identify(bytes.NewReader(mp3Data))
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("identify: %v", err)
	}
	info.Format = string(format)
	info.FileType = string(fileType)

	if !bytes.HasPrefix(mp3Data, []byte("ID3")) {
		return nil
	}

	id3Tag, err := id3v2.ParseReader(bytes.NewReader(mp3Data), id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3v2: %v", err)
	}
	info.Title = id3Tag.Title()
	info.Artist = id3Tag.Artist()
	info.Album = id3Tag.Album()
	info.Year = id3Tag.Year()
	info.Genre = id3Tag.Genre()
	return nil
}
