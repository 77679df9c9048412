package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Input: InputConfig{
			SpecPath:   "/data/specs.txt",
			AssetsPath: "/data/assets",
		},
		Output: OutputConfig{
			Path:         "/data/out/bikes.js",
			Format:       "js",
			PublicPrefix: "/bikes",
			BlurHash:     true,
		},
		Watch: WatchConfig{SettleDelay: 300 * time.Millisecond},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.App.Environment = "local" },
			wantErr: "invalid environment",
		},
		{
			name:    "empty environment",
			mutate:  func(c *Config) { c.App.Environment = "" },
			wantErr: "ENV is required",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logger.Level = "trace" },
			wantErr: "invalid log level",
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "yaml" },
			wantErr: "invalid output format",
		},
		{
			name:    "empty spec path",
			mutate:  func(c *Config) { c.Input.SpecPath = "" },
			wantErr: "spec path cannot be empty",
		},
		{
			name:    "empty assets path",
			mutate:  func(c *Config) { c.Input.AssetsPath = "" },
			wantErr: "assets path cannot be empty",
		},
		{
			name:    "empty output path",
			mutate:  func(c *Config) { c.Output.Path = "" },
			wantErr: "output path cannot be empty",
		},
		{
			name:    "zero settle delay",
			mutate:  func(c *Config) { c.Watch.SettleDelay = 0 },
			wantErr: "settle delay must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_LogLevelIsCaseInsensitive(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stays empty", "", ""},
		{"absolute unchanged", "/data/specs.txt", "/data/specs.txt"},
		{"tilde expands to home", "~/specs.txt", filepath.Join(home, "specs.txt")},
		{"relative becomes absolute", "specs.txt", filepath.Join(cwd, "specs.txt")},
		{"cleaned", "/data//out/../specs.txt", "/data/specs.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("CATALOG_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "CATALOG_TEST_KEY", "fallback"))
	assert.Equal(t, "from-env", getConfigValue("", "CATALOG_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("", "CATALOG_TEST_MISSING", "fallback"))
}

func TestGetBoolConfigValue(t *testing.T) {
	for _, truthy := range []string{"true", "1", "yes", "TRUE", "Yes"} {
		assert.True(t, getBoolConfigValue(truthy, "CATALOG_TEST_BOOL", false), truthy)
	}
	for _, falsy := range []string{"false", "0", "no", "off"} {
		assert.False(t, getBoolConfigValue(falsy, "CATALOG_TEST_BOOL", true), falsy)
	}

	// Empty everywhere falls back to the default.
	assert.True(t, getBoolConfigValue("", "CATALOG_TEST_BOOL_MISSING", true))
	assert.False(t, getBoolConfigValue("", "CATALOG_TEST_BOOL_MISSING", false))
}

func TestLoadEnvFile(t *testing.T) {
	content := strings.Join([]string{
		"# comment",
		"",
		"CATALOG_ENVFILE_A=plain",
		`CATALOG_ENVFILE_B="quoted value"`,
		"CATALOG_ENVFILE_C = spaced ",
	}, "\n")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for _, key := range []string{"CATALOG_ENVFILE_A", "CATALOG_ENVFILE_B", "CATALOG_ENVFILE_C"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "plain", os.Getenv("CATALOG_ENVFILE_A"))
	assert.Equal(t, "quoted value", os.Getenv("CATALOG_ENVFILE_B"))
	assert.Equal(t, "spaced", os.Getenv("CATALOG_ENVFILE_C"))
}

func TestLoadEnvFile_DoesNotOverrideProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_ENVFILE_D=from-file\n"), 0644))

	t.Setenv("CATALOG_ENVFILE_D", "from-process")
	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-process", os.Getenv("CATALOG_ENVFILE_D"))
}

func TestLoadEnvFile_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT A PAIR\n"), 0644))

	err := loadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format at line 1")
}

func TestLoadEnvFile_Missing(t *testing.T) {
	err := loadEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
