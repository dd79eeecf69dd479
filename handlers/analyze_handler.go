// Package handlers is made to handle requests
package handlers

import (
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"mp3inspector-backend/audio"
	"mp3inspector-backend/config"
	"mp3inspector-backend/models"
	"mp3inspector-backend/mp3parser"
)

type AnalyzeHandler struct {
	cfg   *config.Config
	probe *audio.ReferenceProbe
	log   log.FieldLogger
}

func NewAnalyzeHandler(cfg *config.Config, logger log.FieldLogger) *AnalyzeHandler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &AnalyzeHandler{
		cfg:   cfg,
		probe: audio.NewReferenceProbe(),
		log:   logger,
	}
}

func (h *AnalyzeHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "MP3 inspector API is running",
		"version": "1.0.0",
	})
}

// Analyze parses an uploaded MP3 and reports its structure.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)
	if err := c.Request.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	var req models.AnalyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid parameters: %v", err),
		})
		return
	}

	audioFile, audioHeader, err := c.Request.FormFile("audio_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Audio file is required",
		})
		return
	}
	defer audioFile.Close()

	if !isValidMP3File(audioHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid audio file format. Only MP3 files are supported",
		})
		return
	}

	audioData, err := io.ReadAll(audioFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read audio file: %v", err),
		})
		return
	}

	opts := mp3parser.Options{
		StrictCRC: req.StrictCRC || h.cfg.StrictCRC,
		MaxFrames: h.cfg.MaxFrames,
		Logger:    h.log.WithField("file", audioHeader.Filename),
	}
	if req.MaxFrames > 0 {
		opts.MaxFrames = req.MaxFrames
	}

	file, err := mp3parser.NewParser(opts).Parse(audioData)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse MP3 file: %v", err),
		})
		return
	}
	if len(file.Frames) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "No MPEG audio frames found",
		})
		return
	}

	resp := BuildAnalyzeResponse(file)
	if req.Reference || h.cfg.ReferenceProbe {
		resp.Reference = h.probe.Probe(audioData)
		resp.Mismatches = CompareReference(file, resp.Reference)
	}

	h.log.WithFields(log.Fields{
		"file":   audioHeader.Filename,
		"frames": resp.Summary.Frames,
	}).Info("analyzed upload")

	c.JSON(http.StatusOK, resp)
}

// DecodeHeader decodes a single hex-encoded frame header.
func (h *AnalyzeHandler) DecodeHeader(c *gin.Context) {
	var req models.HeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid request: %v", err),
		})
		return
	}

	raw, err := hex.DecodeString(req.Header)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Header must be hex: %v", err),
		})
		return
	}

	header, err := mp3parser.DecodeFrameHeader(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid frame header: %v", err),
		})
		return
	}

	derived, err := header.Derive()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid frame header: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, models.HeaderResponse{
		Success: true,
		Message: header.String(),
		Header:  HeaderInfo(header, derived),
	})
}

func isValidMP3File(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".mp3"
}
