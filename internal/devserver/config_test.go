package devserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "", cfg.Dir)
	require.Equal(t, 64, cfg.IconCacheSize)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perifa-serve.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
dir: `+dir+`
log_level: debug
human_logs: false
request_timeout: 5s
`), 0o644))

	t.Setenv("PERIFA_PORT", "9100")
	t.Setenv("PERIFA_ALLOW_ALL", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9100, cfg.Port)
	require.Equal(t, dir, cfg.Dir)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.HumanLogs)
	require.True(t, cfg.AllowAll)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [\n"), 0o644))

	_, err := LoadConfig(path)
	require.ErrorContains(t, err, "reading config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cases := map[string]func(*Config){
		"port":    func(c *Config) { c.Port = 70000 },
		"missing": func(c *Config) { c.Dir = filepath.Join(t.TempDir(), "nope") },
		"file":    func(c *Config) { c.Dir = file },
		"cache":   func(c *Config) { c.IconCacheSize = 0 },
		"timeout": func(c *Config) { c.RequestTimeout = 0 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		require.Error(t, cfg.Validate(), name)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	_, err := NewLogger("loud", false, nil)
	require.Error(t, err)

	log, err := NewLogger("", true, os.Stderr)
	require.NoError(t, err)
	require.Equal(t, "info", log.GetLevel().String())
}
