package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
llm:
  base_url: "http://localhost:11434"
  model: "mistral"
  max_tokens: 2048
  temperature: 0.3
  timeout_seconds: 60
  rate_limit: 1.5

database:
  url: "postgres://localhost:5432/test"
  table_name: "test_chunks"
  vector_dim: 768
  batch_size: 50

ingest:
  chunk_size: 500
  chunk_overlap: 80

retrieval:
  top_k: 6
  excerpt_length: 400

server:
  port: "9000"
  reports_dir: "out"
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	// Test loading config
	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	// Verify loaded values
	assert.Equal(t, "http://localhost:11434", config.LLM.BaseURL)
	assert.Equal(t, "mistral", config.LLM.Model)
	assert.Equal(t, 2048, config.LLM.MaxTokens)
	assert.Equal(t, 0.3, config.LLM.Temperature)
	assert.Equal(t, "postgres://localhost:5432/test", config.Database.URL)
	assert.Equal(t, "test_chunks", config.Database.TableName)
	assert.Equal(t, 500, config.Ingest.ChunkSize)
	assert.Equal(t, 6, config.Retrieval.TopK)
	assert.Equal(t, "9000", config.Server.Port)
}

func TestLoadConfig_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("llm:\n  model: mistral\n"), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434", config.LLM.BaseURL)
	assert.Equal(t, 4096, config.LLM.MaxTokens)
	assert.Equal(t, "chunks", config.Database.TableName)
	assert.Equal(t, 1000, config.Ingest.ChunkSize)
	assert.Equal(t, 150, config.Ingest.ChunkOverlap)
	assert.Equal(t, 8, config.Retrieval.TopK)
	assert.Equal(t, 600, config.Retrieval.ExcerptLength)
	assert.Equal(t, "reports", config.Server.ReportsDir)
}

func TestConfigValidation(t *testing.T) {
	config, err := getDefaultConfig()
	require.NoError(t, err)
	assert.Empty(t, config.Validate())

	// Break a few fields and make sure each is reported
	config.LLM.BaseURL = ""
	config.Ingest.ChunkOverlap = 2000
	config.Retrieval.TopK = 0

	errs := config.Validate()
	require.Len(t, errs, 3)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
		assert.NotEmpty(t, e.Error())
	}
	assert.True(t, fields["llm.base_url"])
	assert.True(t, fields["ingest.chunk_overlap"])
	assert.True(t, fields["retrieval.top_k"])
}
