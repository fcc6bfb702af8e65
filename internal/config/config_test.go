package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plantgo/plantgo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	d, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults{}, d)
}

func TestLoadParsesFields(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "plantgo.yaml")
	contents := `
fontFamily: Helvetica
fontSize: 14
baseMargin: 25
participantWidth: 60
skinparams:
  arrowColor: "#FF0000"
`
	require.NoError(t, writeFile(path, contents))

	d, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Helvetica", d.FontFamily)
	assert.Equal(t, 14.0, d.FontSize)
	assert.Equal(t, 25.0, d.BaseMargin)
	assert.Equal(t, 60.0, d.ParticipantWidth)
	assert.Equal(t, "#FF0000", d.Skinparams["arrowColor"])
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "plantgo.yaml")
	require.NoError(t, writeFile(path, "theme: [unterminated"))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
