package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"mp3inspector-backend/config"
	"mp3inspector-backend/mp3parser"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		MaxUploadBytes: 1 << 20,
		LogLevel:       log.PanicLevel,
	}
}

func newTestRouter(cfg *config.Config) *gin.Engine {
	logger := log.New()
	logger.SetOutput(io.Discard)

	h := NewAnalyzeHandler(cfg, logger)
	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/health", h.HealthCheck)
	api.POST("/mp3/analyze", h.Analyze)
	api.POST("/mp3/header", h.DecodeHeader)
	return r
}

// frames returns n zero-filled frames with the given 4-byte header.
func frames(t *testing.T, n int, header ...byte) []byte {
	t.Helper()

	h, err := mp3parser.DecodeFrameHeader(header)
	require.NoError(t, err)
	d, err := h.Derive()
	require.NoError(t, err)

	var out []byte
	for i := 0; i < n; i++ {
		frame := make([]byte, d.FrameLength)
		copy(frame, header)
		out = append(out, frame...)
	}
	return out
}

// protectedFrame returns one CRC-protected frame whose embedded CRC does not
// match.
func protectedFrame(t *testing.T) []byte {
	t.Helper()

	frame := frames(t, 1, 0xFF, 0xFA, 0x90, 0x64)
	for v := 0; v <= 0xFFFF; v++ {
		frame[4] = byte(v >> 8)
		frame[5] = byte(v)
		if mp3parser.Checksum(frame) != uint16(v) {
			return frame
		}
	}
	t.Fatal("every embedded value matched")
	return nil
}

func id3Tag(t *testing.T, id, text string) []byte {
	t.Helper()

	content := append([]byte{0x00}, text...)
	frameSize, err := mp3parser.EncodeSynchsafe(len(content))
	require.NoError(t, err)

	body := []byte(id)
	body = append(body, frameSize[:]...)
	body = append(body, 0, 0)
	body = append(body, content...)

	tagSize, err := mp3parser.EncodeSynchsafe(len(body))
	require.NoError(t, err)
	tag := []byte{'I', 'D', '3', 3, 0, 0}
	tag = append(tag, tagSize[:]...)
	return append(tag, body...)
}

func uploadRequest(t *testing.T, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("audio_file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mp3/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
