package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("STUDIO_HTTP_TIMEOUT", "5s")

	cfg := LoadConfig()
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestConfig_ApplyOptions(t *testing.T) {
	cfg := &Config{GeminiImageModel: DefaultImageModel, OutputDir: DefaultOutputDir, HTTPTimeout: DefaultHTTPTimeout}

	cfg.ApplyOptions(Options{ImageModel: "custom", OutputDir: "gs://bucket/out"})
	assert.Equal(t, "custom", cfg.GeminiImageModel)
	assert.Equal(t, "gs://bucket/out", cfg.OutputDir)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, DefaultCanvasWidth, cfg.Options.CanvasWidth)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
