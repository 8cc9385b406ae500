// Package config resolves client configuration for the SwasthaAI terminal client.
//
// Resolution order, lowest to highest precedence:
//  1. built-in defaults
//  2. ~/.swastha/config.yaml (if present)
//  3. .env in the working directory (if present)
//  4. process environment variables
//
// The three backend base URLs are collaborator-supplied; the client never
// derives them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/swasthaai/swastha-cli/internal/errors"
)

// Environment variable names consumed by the client.
const (
	EnvUserAPIURL   = "SWASTHA_USER_API_URL"
	EnvDoctorAPIURL = "SWASTHA_DOCTOR_API_URL"
	EnvAIAPIURL     = "SWASTHA_AI_API_URL"
	EnvSessionScope = "SWASTHA_SESSION_SCOPE"
	EnvStateDir     = "SWASTHA_STATE_DIR"
	EnvLogLevel     = "SWASTHA_LOG_LEVEL"
)

// Config holds the resolved client configuration.
type Config struct {
	// UserAPIURL is the base URL of the user backend (auth, profile, MedAlert).
	UserAPIURL string `yaml:"user_api_url"`

	// DoctorAPIURL is the base URL of the doctor backend.
	DoctorAPIURL string `yaml:"doctor_api_url"`

	// AIAPIURL is the base URL of the AI assistant microservice.
	AIAPIURL string `yaml:"ai_api_url"`

	// SessionScope names the session file, isolating concurrent shells the
	// way browser tabs isolate session storage.
	SessionScope string `yaml:"session_scope"`

	// StateDir is where session state and the seal key live.
	StateDir string `yaml:"state_dir"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		UserAPIURL:   "http://localhost:8000",
		DoctorAPIURL: "http://localhost:8001",
		AIAPIURL:     "http://localhost:8081",
		SessionScope: "default",
		StateDir:     defaultStateDir(),
		LogLevel:     "warn",
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swastha"
	}
	return filepath.Join(home, ".swastha")
}

// Load resolves the configuration from defaults, the YAML config file,
// .env, and the environment.
func Load() (Config, error) {
	cfg := Default()

	if err := cfg.mergeFile(filepath.Join(cfg.StateDir, "config.yaml")); err != nil {
		return Config{}, err
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg.mergeEnv()

	return cfg, nil
}

// LoadFile resolves the configuration from an explicit YAML file plus the
// environment. The file must exist.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return Config{}, errors.NewFileNotFoundError(path)
	}
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}

	cfg.mergeEnv()

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read config file: %s", path), err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(errors.ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse yaml file: %s", path), err).
			WithSuggestion("Check the file syntax and format")
	}

	return nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv(EnvUserAPIURL); v != "" {
		c.UserAPIURL = v
	}
	if v := os.Getenv(EnvDoctorAPIURL); v != "" {
		c.DoctorAPIURL = v
	}
	if v := os.Getenv(EnvAIAPIURL); v != "" {
		c.AIAPIURL = v
	}
	if v := os.Getenv(EnvSessionScope); v != "" {
		c.SessionScope = v
	}
	if v := os.Getenv(EnvStateDir); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// SessionFile returns the path of the scope-named session file.
func (c Config) SessionFile() string {
	return filepath.Join(c.StateDir, "sessions", c.SessionScope+".json")
}

// SealedSessionFile returns the path of the scope-named sealed session file.
func (c Config) SealedSessionFile() string {
	return filepath.Join(c.StateDir, "sessions", c.SessionScope+".sealed")
}

// SealKeyFile returns the path of the key file for the sealed session store.
func (c Config) SealKeyFile() string {
	return filepath.Join(c.StateDir, "seal.key")
}
