// Package config loads companion configuration from a TOML file, an optional
// .env file, and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables consulted during resolution.
const (
	EnvDB        = "COMPANION_DB"
	EnvConfig    = "COMPANION_CONFIG"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// DefaultModel per chat provider.
var DefaultModel = map[string]string{
	"gemini": "gemini-2.0-flash-exp",
	"openai": "gpt-4o-mini",
	"claude": "claude-3-5-haiku-latest",
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validFormats = map[string]bool{
	"text": true,
	"json": true,
}

type DataConfig struct {
	DBPath string `toml:"db_path"`
}

// ChatConfig selects the chat gateway.
type ChatConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Data    DataConfig    `toml:"data"`
	Chat    ChatConfig    `toml:"chat"`
	Logging LoggingConfig `toml:"logging"`
}

// Default returns the configuration used when no file exists. The chat model
// is filled per provider by Load.
func Default() *Config {
	return &Config{
		Data:    DataConfig{DBPath: DefaultDBPath()},
		Chat:    ChatConfig{Provider: "gemini"},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// DefaultDBPath is ~/.companion/companion.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".companion", "companion.db")
}

// DefaultPath is ~/.companion/config.toml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".companion", "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is not
// an error. ${VAR} references are expanded before parsing. Variables from a
// .env file in the working directory are loaded first and never override the
// real environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := toml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if env := os.Getenv(EnvDB); env != "" {
		c.Data.DBPath = env
	}
	if c.Data.DBPath == "" {
		c.Data.DBPath = DefaultDBPath()
	}
	if c.Chat.Model == "" {
		c.Chat.Model = DefaultModel[c.Chat.Provider]
	}
	if c.Chat.APIKey == "" && c.Chat.Provider == "gemini" {
		c.Chat.APIKey = os.Getenv(EnvGeminiKey)
	}
}

// Validate checks enum fields.
func (c *Config) Validate() error {
	if _, ok := DefaultModel[c.Chat.Provider]; !ok {
		return fmt.Errorf("chat.provider %q is not one of gemini, openai, claude", c.Chat.Provider)
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value, or "" when unset.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
