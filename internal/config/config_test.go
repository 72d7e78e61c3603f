package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/rowrender"
	"github.com/bjaus/rowrender/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, rowrender.DefaultTemplateDir, cfg.TemplateDir)
	assert.Equal(t, rowrender.EmptyText, cfg.EmptyText)
	assert.Equal(t, 0, cfg.Log.Verbosity)
	assert.False(t, cfg.Output.Pretty)
	assert.False(t, cfg.Output.Sanitize)
	assert.Equal(t, "auto", cfg.Output.Style)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
template_dir: tpl
empty_text: "(empty)"
log:
  verbosity: 2
output:
  pretty: true
  style: dark
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tpl", cfg.TemplateDir)
	assert.Equal(t, "(empty)", cfg.EmptyText)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.True(t, cfg.Output.Pretty)
	assert.False(t, cfg.Output.Sanitize)
	assert.Equal(t, "dark", cfg.Output.Style)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "template_dir: tpl\n")
	t.Setenv("ROWRENDER_TEMPLATE_DIR", "from-env")
	t.Setenv("ROWRENDER_OUTPUT__SANITIZE", "true")
	t.Setenv("ROWRENDER_LOG__VERBOSITY", "3")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TemplateDir)
	assert.True(t, cfg.Output.Sanitize)
	assert.Equal(t, 3, cfg.Log.Verbosity)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeConfig(t, "template_dir: [unclosed\n")
	_, err := config.Load(path)
	assert.ErrorContains(t, err, "failed to load config")
}

func TestRenderOptions(t *testing.T) {
	cfg := &config.Config{TemplateDir: "tpl", EmptyText: "none"}

	r, err := rowrender.New("md", "", cfg.RenderOptions()...)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("tpl", rowrender.DefaultMarkdownTemplate), r.TemplatePath())

	text, err := rowrender.Marshal(rowrender.PlainText, nil, cfg.RenderOptions()...)
	require.NoError(t, err)
	assert.Equal(t, "none", string(text))
}
