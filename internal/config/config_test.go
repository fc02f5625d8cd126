package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawgen.yaml")
	yaml := `provider: ollama
host: http://gpu-box:11434
model: qwen2.5:14b
out_dir: /data/law
workers: 4
retries: 2
generation:
  num_ctx: 8192
  temperature: 0.3
  top_p: 0.95
  repeat_penalty: 1.05
  seed: 42
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", f.Provider)
	assert.Equal(t, "http://gpu-box:11434", f.Host)
	assert.Equal(t, "qwen2.5:14b", f.Model)
	assert.Equal(t, "/data/law", f.OutDir)
	assert.Equal(t, 4, f.Workers)
	assert.Equal(t, 2, f.Retries)
	assert.Equal(t, 8192, f.Generation.NumCtx)
	assert.Equal(t, 0.3, f.Generation.Temperature)
	assert.Equal(t, 0.95, f.Generation.TopP)
	assert.Equal(t, 1.05, f.Generation.RepeatPenalty)
	assert.Equal(t, 42, f.Generation.Seed)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: llama3.1:8b\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "llama3.1:8b", f.Model)
	assert.Zero(t, f.Workers)
	assert.Zero(t, f.Generation.Temperature)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [not an int\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "lawgen", "lawgen.yaml"), p)
}
