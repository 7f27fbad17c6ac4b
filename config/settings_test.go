package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", s.AppVersion)
	assert.Equal(t, 8000, s.Port)
	assert.Equal(t, "0.0.0.0:8000", s.Addr())
	assert.Equal(t, "telepatia", s.MongoDB)
	assert.Equal(t, STTProviderGoogle, s.STTProvider)
	assert.Equal(t, "es-ES", s.STTLanguage)
	assert.Equal(t, int64(15<<20), s.MaxAudioBytes)
	assert.Equal(t, 60*time.Second, s.CollaboratorTimeout)
	assert.Equal(t, time.Hour, s.ExtractionCacheTTL)
	assert.True(t, s.LogRedact)
	assert.Empty(t, s.RedisAddr)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MONGODB_URL", "mongodb://db:27017")
	t.Setenv("STT_PROVIDER", "Gemini")
	t.Setenv("COLLABORATOR_TIMEOUT", "15s")
	t.Setenv("LOG_REDACT", "false")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, "mongodb://db:27017", s.MongoURI)
	assert.Equal(t, STTProviderGemini, s.STTProvider)
	assert.Equal(t, 15*time.Second, s.CollaboratorTimeout)
	assert.False(t, s.LogRedact)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "telepatia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mongo_db: clinic\nllm_model: gemini-pro\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LLM_MODEL", "gemini-env")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "clinic", s.MongoDB)
	assert.Equal(t, "gemini-env", s.LLMModel)
}

func TestLoadRejectsUnknownSTTProvider(t *testing.T) {
	chdirTemp(t)
	t.Setenv("STT_PROVIDER", "whisper")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stt_provider")
}

func TestLoadCapsAudioSize(t *testing.T) {
	chdirTemp(t)

	t.Setenv("MAX_AUDIO_BYTES", "1048576")
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), s.MaxAudioBytes)

	t.Setenv("MAX_AUDIO_BYTES", "26214400")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_audio_bytes")
}
