package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Endpoint string `json:"endpoint"`
	Retries  int    `json:"retries"`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json5")
	writeFile(t, path, `{
	// comments are allowed
	endpoint: "http://localhost:9515",
	retries: 3,
}`)

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9515", config.Endpoint)
	require.Equal(t, 3, config.Retries)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"),
		`{endpoint: "http://localhost:9515", retries: 3}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"),
		`{endpoint: "http://remote:4444"}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://remote:4444", config.Endpoint)
	require.Equal(t, 3, config.Retries)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.True(t, os.IsNotExist(err))
}
