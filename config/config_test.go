package config

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "MAX_UPLOAD_MB", "STRICT_CRC", "MAX_FRAMES", "REFERENCE_PROBE"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.StrictCRC)
	assert.Equal(t, 0, cfg.MaxFrames)
	assert.False(t, cfg.ReferenceProbe)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_UPLOAD_MB", "4")
	t.Setenv("STRICT_CRC", "true")
	t.Setenv("MAX_FRAMES", "100")
	t.Setenv("REFERENCE_PROBE", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, int64(4<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.StrictCRC)
	assert.Equal(t, 100, cfg.MaxFrames)
	assert.True(t, cfg.ReferenceProbe)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"LOG_LEVEL":       "loud",
		"MAX_UPLOAD_MB":   "zero",
		"STRICT_CRC":      "maybe",
		"MAX_FRAMES":      "-1",
		"REFERENCE_PROBE": "sometimes",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
