// Package config reads runtime settings from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       log.Level
	MaxUploadBytes int64
	StrictCRC      bool
	MaxFrames      int
	ReferenceProbe bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	level, err := log.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	maxUploadMB, err := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	if err != nil || maxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer, got %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	if cfg.StrictCRC, err = strconv.ParseBool(getenv("STRICT_CRC", "false")); err != nil {
		return nil, fmt.Errorf("STRICT_CRC: %w", err)
	}
	if cfg.ReferenceProbe, err = strconv.ParseBool(getenv("REFERENCE_PROBE", "false")); err != nil {
		return nil, fmt.Errorf("REFERENCE_PROBE: %w", err)
	}

	cfg.MaxFrames, err = strconv.Atoi(getenv("MAX_FRAMES", "0"))
	if err != nil || cfg.MaxFrames < 0 {
		return nil, fmt.Errorf("MAX_FRAMES must be a non-negative integer, got %q", os.Getenv("MAX_FRAMES"))
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
