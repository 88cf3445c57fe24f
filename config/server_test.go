package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
server:
  address: ":9090"
  tokens: [secret]
profiles:
  dir: ./profiles
  format: yaml
detector:
  alpha: 0.3
  max_text_length: 500
  prior:
    en: 0.7
    fr: 0.3
`

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	envelope, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", envelope.Server.Address)
	assert.Equal(t, []string{"secret"}, envelope.Server.Tokens)
	assert.Equal(t, "./profiles", envelope.Profiles.Dir)
	assert.Equal(t, "yaml", envelope.Profiles.Format)
	assert.Equal(t, 0.3, envelope.Detector.Alpha)
	assert.Equal(t, 500, envelope.Detector.MaxTextLength)
	assert.Equal(t, map[string]float64{"en": 0.7, "fr": 0.3}, envelope.Detector.Prior)
}

func TestLoadConfigFromFile_Errors(t *testing.T) {
	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))
	_, err = LoadConfigFromFile(path)
	assert.Error(t, err)

	envelope, err := LoadConfigFromFile("")
	require.NoError(t, err)
	assert.Empty(t, envelope.Server.Address)
}
