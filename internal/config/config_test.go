package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VIZLEARN_CONFIG", "VIZLEARN_BACKEND", "VIZLEARN_DB", "VIZLEARN_REDIS_ADDR",
		"VIZLEARN_REDIS_PASSWORD", "VIZLEARN_REDIS_PREFIX", "VIZLEARN_REDIS_DB",
		"VIZLEARN_RETRY_ATTEMPTS", "VIZLEARN_RETRY_DELAY", "VIZLEARN_LOG_LEVEL",
		"VIZLEARN_LOG_FILE", "VIZLEARN_TZ",
	} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "vizlearn:", cfg.Redis.Prefix)
	require.NoError(t, cfg.Validate())

	rc := cfg.StorageRetry()
	assert.Equal(t, 3, rc.Attempts)
	assert.Equal(t, 100*time.Millisecond, rc.Delay)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
backend: redis
redis:
  addr: cache:6380
  db: 2
retry:
  attempts: 5
  delay: 250ms
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "vizlearn:", cfg.Redis.Prefix, "unset fields keep defaults")
	assert.Equal(t, 5, cfg.StorageRetry().Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.StorageRetry().Delay)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeFile(t, "backend: [oops\n"))
	require.Error(t, err)
}

func TestPrecedence(t *testing.T) {
	path := writeFile(t, "backend: redis\ndb_path: /from/file.db\nredis:\n  addr: file:1\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		"VIZLEARN_BACKEND":    "memory",
		"VIZLEARN_DB":         "/from/env.db",
		"VIZLEARN_REDIS_DB":   "4",
		"VIZLEARN_REDIS_ADDR": "",
	})))
	assert.Equal(t, BackendMemory, cfg.Backend, "env beats file")
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.Redis.DB)
	assert.Equal(t, "file:1", cfg.Redis.Addr, "empty env value is ignored")

	cfg.Apply(Overrides{DBPath: "/from/flag.db"})
	assert.Equal(t, "/from/flag.db", cfg.DBPath, "flag beats env")
	assert.Equal(t, BackendMemory, cfg.Backend, "unset flag keeps env value")
}

func TestApplyEnv_BadNumber(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"VIZLEARN_RETRY_ATTEMPTS": "many"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIZLEARN_RETRY_ATTEMPTS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"memory backend", func(c *Config) { c.Backend = BackendMemory }, true},
		{"unknown backend", func(c *Config) { c.Backend = "mongo" }, false},
		{"zero attempts", func(c *Config) { c.Retry.Attempts = 0 }, false},
		{"bad delay", func(c *Config) { c.Retry.Delay = "soon" }, false},
		{"utc timezone", func(c *Config) { c.Timezone = "UTC" }, true},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestResolve_MissingDefaultFileIsFine(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_MissingExplicitFileFails(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestResolve_EnvOverFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "backend: redis\n")
	t.Setenv("VIZLEARN_BACKEND", "memory")

	cfg, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
}

func TestResolve_InvalidFileBackend(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(writeFile(t, "backend: mongo\n"))
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vizlearn", "config.yaml"), p)

	t.Setenv("VIZLEARN_CONFIG", "/etc/vizlearn.yaml")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/vizlearn.yaml", p)
}
