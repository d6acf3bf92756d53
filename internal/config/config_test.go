package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "statline.db", cfg.Database)
	assert.Equal(t, time.Second, cfg.Interval())
	assert.True(t, cfg.MasterSession)
	assert.Empty(t, cfg.Tokens)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statline.yaml")
	data := `
log_file: out.log
database: world.db
metrics_addr: ":9100"
refresh_millis: 250
master_session: false
seed: 99
tokens:
  - name: Steps
    query: player=host|stat=stepsTaken
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "world.db", cfg.Database)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval())
	assert.False(t, cfg.MasterSession)
	assert.Equal(t, int64(99), cfg.Seed)
	require.Len(t, cfg.Tokens, 1)
	assert.Equal(t, "Steps", cfg.Tokens[0].Name)
}

func TestLoadRejectsBadRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh_millis: -5\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "refresh_millis")
}

func TestLoadRejectsIncompleteToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statline.yaml")
	data := "tokens:\n  - name: OnlyName\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "name and query")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
