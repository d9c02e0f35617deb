package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/herohde/checkai/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.ListenAddr)
	assert.Equal(t, 32, cfg.Hub.MailboxSize)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "checkai.toml")
	contents := `
[server]
listen_addr = "0.0.0.0:9000"

[storage]
base_dir = "/var/lib/checkai"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.ListenAddr)
	assert.Equal(t, "/var/lib/checkai", cfg.Storage.BaseDir)
	assert.Equal(t, 32, cfg.Hub.MailboxSize, "fields absent from the file keep their default")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/path/checkai.toml")
	assert.Error(t, err)
}
