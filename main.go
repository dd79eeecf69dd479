package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"

	"mp3inspector-backend/audio"
	"mp3inspector-backend/config"
	"mp3inspector-backend/handlers"
	"mp3inspector-backend/models"
	"mp3inspector-backend/mp3parser"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	if len(os.Args) > 1 {
		if err := inspectFiles(os.Stdout, cfg, os.Args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	analyzeHandler := handlers.NewAnalyzeHandler(cfg, log.StandardLogger())

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", analyzeHandler.HealthCheck)

		mp3 := api.Group("/mp3")
		{
			mp3.POST("/analyze", analyzeHandler.Analyze)
			mp3.POST("/header", analyzeHandler.DecodeHeader)
		}
	}

	log.Infof("Server starting on port %s", cfg.Port)
	log.Infof("API endpoints:")
	log.Infof("  POST /api/v1/mp3/analyze - Report ID3v2 tag, frame headers, CRC and side information")
	log.Infof("  POST /api/v1/mp3/header  - Decode a single hex frame header")
	log.Infof("  GET  /api/v1/health      - Health check")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// inspectFiles writes a JSON report for each path to w, the same report the
// analyze endpoint returns.
func inspectFiles(w io.Writer, cfg *config.Config, paths []string) error {
	probe := audio.NewReferenceProbe()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	for _, p := range paths {
		report, err := inspectFile(cfg, probe, p)
		if err != nil {
			return err
		}
		if err := enc.Encode(report); err != nil {
			return err
		}
	}
	return nil
}

func inspectFile(cfg *config.Config, probe *audio.ReferenceProbe, p string) (*models.AnalyzeResponse, error) {
	path, err := homedir.Expand(p)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", p, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parser := mp3parser.NewParser(mp3parser.Options{
		StrictCRC: cfg.StrictCRC,
		MaxFrames: cfg.MaxFrames,
		Logger:    log.WithField("file", path),
	})
	file, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	report := handlers.BuildAnalyzeResponse(file)
	if cfg.ReferenceProbe {
		report.Reference = probe.Probe(data)
		report.Mismatches = handlers.CompareReference(file, report.Reference)
	}
	return &report, nil
}
