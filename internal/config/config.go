// Package config provides generator configuration with support for
// environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the generator configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Input  InputConfig
	Output OutputConfig
	Watch  WatchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// InputConfig holds the two pipeline inputs.
type InputConfig struct {
	// SpecPath is the flat spec text file.
	SpecPath string
	// AssetsPath is the root of the image asset tree.
	AssetsPath string
}

// OutputConfig holds artifact configuration.
type OutputConfig struct {
	// Path of the generated artifact (default: src/data/bikes.js)
	Path string
	// Format of the artifact: "js" or "json" (default: js)
	Format string
	// PublicPrefix is the URL prefix matched images are rewritten under (default: /bikes)
	PublicPrefix string
	// Seed for the weight synthesizer; 0 means seed from the clock
	Seed uint64
	// BlurHash enables placeholder hash computation for matched images (default: true)
	BlurHash bool
	// DryRun skips the artifact write
	DryRun bool
}

// WatchConfig holds regenerate-on-change configuration.
type WatchConfig struct {
	// Enabled keeps the generator running and regenerating on input changes
	Enabled bool
	// SettleDelay is how long events must quiesce before a regeneration (default: 300ms)
	SettleDelay time.Duration
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	specPath := flag.String("spec", "", "Path to the spec text file")
	assetsPath := flag.String("assets", "", "Root of the image asset tree")
	outputPath := flag.String("out", "", "Path of the generated artifact")
	outputFormat := flag.String("format", "", "Artifact format (js, json)")
	publicPrefix := flag.String("public-prefix", "", "Public URL prefix for matched images")
	seed := flag.String("seed", "", "Weight synthesizer seed (0 = from clock)")
	blurHash := flag.String("blurhash", "", "Compute BlurHash for matched images (default: true)")
	dryRun := flag.Bool("dry-run", false, "Run the pipeline without writing the artifact")
	watch := flag.Bool("watch", false, "Regenerate when the spec file or asset tree changes")
	settleDelay := flag.String("settle-delay", "", "Watch settle delay (default: 300ms)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Input: InputConfig{
			SpecPath:   getConfigValue(*specPath, "CATALOG_SPEC_PATH", "specs.txt"),
			AssetsPath: getConfigValue(*assetsPath, "CATALOG_ASSETS_PATH", filepath.Join("public", "bikes")),
		},
		Output: OutputConfig{
			Path:         getConfigValue(*outputPath, "CATALOG_OUTPUT_PATH", filepath.Join("src", "data", "bikes.js")),
			Format:       getConfigValue(*outputFormat, "CATALOG_OUTPUT_FORMAT", "js"),
			PublicPrefix: getConfigValue(*publicPrefix, "CATALOG_PUBLIC_PREFIX", "/bikes"),
			BlurHash:     getBoolConfigValue(*blurHash, "CATALOG_BLURHASH", true),
			DryRun:       *dryRun,
		},
		Watch: WatchConfig{
			Enabled: *watch || getBoolConfigValue("", "CATALOG_WATCH", false),
		},
	}

	// Parse the synthesizer seed.
	seedStr := getConfigValue(*seed, "CATALOG_SEED", "0")
	seedValue, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", seedStr, err)
	}
	cfg.Output.Seed = seedValue

	// Parse the watch settle delay.
	settleStr := getConfigValue(*settleDelay, "CATALOG_SETTLE_DELAY", "300ms")
	settle, err := time.ParseDuration(settleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid settle delay %q: %w", settleStr, err)
	}
	cfg.Watch.SettleDelay = settle

	// Expand input/output paths.
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	validFormats := map[string]bool{
		"js":   true,
		"json": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be js or json)", c.Output.Format)
	}

	if c.Input.SpecPath == "" {
		return errors.New("spec path cannot be empty")
	}
	if c.Input.AssetsPath == "" {
		return errors.New("assets path cannot be empty")
	}
	if c.Output.Path == "" {
		return errors.New("output path cannot be empty")
	}
	if c.Watch.SettleDelay <= 0 {
		return errors.New("settle delay must be positive")
	}

	return nil
}

// expandPaths expands ~ and makes every configured path absolute.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Input.SpecPath, &c.Input.AssetsPath, &c.Output.Path} {
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
