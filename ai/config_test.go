package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "http://localhost:11434", cfg.VisionHost)
	assert.Equal(t, "llava", cfg.VisionModel)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, 200, cfg.DescriptionWords)
	require.NoError(t, cfg.Validate())
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithVisionHost("http://vision:11434"),
		WithVisionModel("llava:13b"),
		WithEmbeddingHost("http://embed:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithDescriptionWords(120),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://vision:11434", cfg.VisionHost)
	assert.Equal(t, "llava:13b", cfg.VisionModel)
	assert.Equal(t, "http://embed:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, 120, cfg.DescriptionWords)
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name          string
		visionHost    string
		embeddingHost string
		wantVision    string
		wantEmbedding string
	}{
		{
			name:          "trailing slash on vision host",
			visionHost:    "http://localhost:11434/",
			embeddingHost: "http://localhost:11434/v1",
			wantVision:    "http://localhost:11434",
			wantEmbedding: "http://localhost:11434/v1",
		},
		{
			name:          "embedding host without v1 suffix",
			visionHost:    "http://localhost:11434",
			embeddingHost: "http://localhost:11434",
			wantVision:    "http://localhost:11434",
			wantEmbedding: "http://localhost:11434/v1",
		},
		{
			name:          "embedding host with trailing slash",
			visionHost:    "http://localhost:11434",
			embeddingHost: "http://localhost:11434/",
			wantVision:    "http://localhost:11434",
			wantEmbedding: "http://localhost:11434/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(
				WithVisionHost(tt.visionHost),
				WithEmbeddingHost(tt.embeddingHost),
			)
			cfg.Normalize()
			assert.Equal(t, tt.wantVision, cfg.VisionHost)
			assert.Equal(t, tt.wantEmbedding, cfg.EmbeddingHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing vision host", func(c *Config) { c.VisionHost = "" }},
		{"missing vision model", func(c *Config) { c.VisionModel = "" }},
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"zero word bound", func(c *Config) { c.DescriptionWords = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
