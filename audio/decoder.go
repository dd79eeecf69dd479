// Package audio cross-checks parsed structure against third-party parsers
package audio

import (
	"errors"
	"fmt"

	"github.com/tosone/minimp3"

	"mp3inspector-backend/models"
)

var errNoStream = errors.New("minimp3: no decodable frames")

// ReferenceProbe asks established parsers what they see in a file, so the
// report can flag disagreements with our own decode.
type ReferenceProbe struct{}

func NewReferenceProbe() *ReferenceProbe {
	return &ReferenceProbe{}
}

// Probe runs every reference parser. Individual failures are collected on
// the result instead of aborting the probe.
func (p *ReferenceProbe) Probe(mp3Data []byte) *models.ReferenceInfo {
	info := &models.ReferenceInfo{}
	if err := p.ProbeTags(mp3Data, info); err != nil {
		info.Errors = append(info.Errors, err.Error())
	}
	if err := p.ProbeStream(mp3Data, info); err != nil {
		info.Errors = append(info.Errors, err.Error())
	}
	return info
}

// ProbeStream fills the stream parameters minimp3 reports.
func (p *ReferenceProbe) ProbeStream(mp3Data []byte, info *models.ReferenceInfo) error {
	if len(mp3Data) == 0 {
		return errNoStream
	}

	decoder, _, err := minimp3.DecodeFull(mp3Data)
	if err != nil {
		return fmt.Errorf("minimp3: %v", err)
	}
	defer decoder.Close()

	if decoder.SampleRate == 0 || decoder.Channels == 0 {
		return errNoStream
	}
	info.SampleRate = decoder.SampleRate
	info.Channels = decoder.Channels
	return nil
}
