package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/errguard/logger"
)

type errorsSection struct {
	DefaultStatusCode int    `mapstructure:"default_status_code"`
	DefaultMessage    string `mapstructure:"default_message"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Errors        errorsSection `mapstructure:"errors"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		assert.Equal(t, "development", cfg.Environment)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		assert.False(t, cfg.Debug)
		assert.Equal(t, "info", cfg.Logging.Level)
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := logger.Config{Level: "info", Format: logger.FormatJSON}
	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging", Logging: valid}, ""},
		{"missing name", ServiceConfig{Environment: "production", Logging: valid}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa", Logging: valid}, "config.environment must be one of"},
		{"invalid logging", ServiceConfig{Name: "svc", Environment: "production", Logging: logger.Config{Level: "loud", Format: logger.FormatJSON}}, "config.logging: logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: test-service
environment: staging
logging:
  level: warn
  format: json
errors:
  default_status_code: 503
  default_message: Try again later.
`)

	var cfg testConfig
	require.NoError(t, LoadConfig("test-service", &cfg, WithConfigFile(path)))

	assert.Equal(t, "test-service", cfg.Name)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 503, cfg.Errors.DefaultStatusCode)
	assert.Equal(t, "Try again later.", cfg.Errors.DefaultMessage)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
name: test-service
errors:
  default_status_code: 503
`)
	t.Setenv("ERRORS_DEFAULT_STATUS_CODE", "502")
	t.Setenv("ERRORS_DEFAULT_MESSAGE", "Upstream failed.")

	var cfg testConfig
	require.NoError(t, LoadConfig("test-service", &cfg, WithConfigFile(path)))
	assert.Equal(t, 502, cfg.Errors.DefaultStatusCode)
	assert.Equal(t, "Upstream failed.", cfg.Errors.DefaultMessage)
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "ERRGUARD_TEST_VERSION=9.9.9\n")
	t.Cleanup(func() { os.Unsetenv("ERRGUARD_TEST_VERSION") })

	type envConfig struct {
		Errguard struct {
			Test struct {
				Version string `mapstructure:"version"`
			} `mapstructure:"test"`
		} `mapstructure:"errguard"`
	}

	var cfg envConfig
	require.NoError(t, LoadConfig("test-service", &cfg,
		WithConfigFile(filepath.Join(dir, "missing.yml")), WithEnvFile(envPath)))
	assert.Equal(t, "9.9.9", cfg.Errguard.Test.Version)
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	assert.NoError(t, LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml")))
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "name: [unterminated\n")

	var cfg testConfig
	assert.Error(t, LoadConfig("test-service", &cfg, WithConfigFile(path)))
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolveWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("..", "cmd", "my-svc", "config.yml"): true,
		filepath.Join("config", ".env"):                    true,
	}}

	files := Resolve("my-svc", LoaderConfig{FileSystem: fs})
	assert.Equal(t, filepath.Join("..", "cmd", "my-svc", "config.yml"), files.ConfigFile)
	assert.Equal(t, filepath.Join("config", ".env"), files.EnvFile)
}

func TestResolveExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"config.yml": true}}
	files := Resolve("svc", LoaderConfig{FileSystem: fs, ConfigFile: "/etc/svc.yml", EnvFile: "/etc/svc.env"})
	assert.Equal(t, Files{ConfigFile: "/etc/svc.yml", EnvFile: "/etc/svc.env"}, files)
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("ERRORS_DEFAULT_MESSAGE")
	for _, want := range []string{
		"errors_default_message",
		"errors.default.message",
		"errors.default_message",
		"errors_default.message",
	} {
		assert.Contains(t, got, want)
	}

	assert.Equal(t, []string{"port"}, envKeyVariants("PORT"))
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	assert.Same(t, fs, lc.FileSystem)
	assert.Equal(t, "/path/to/config.yml", lc.ConfigFile)
	assert.Equal(t, "/path/to/.env", lc.EnvFile)
}
