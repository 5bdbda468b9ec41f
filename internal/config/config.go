package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
)

type (
	Config struct {
		GitHub   GitHubConfig  `yaml:"github"`
		Scoring  ScoringConfig `yaml:"scoring"`
		Cache    CacheConfig   `yaml:"cache"`
		Language string        `yaml:"language" env:"PRSCORE_LANG" env-default:"en"`
		HomeDir  string        `yaml:"home_dir" env:"PRSCORE_HOME"`

		// PathFile is the YAML file the config was read from, if any.
		PathFile string `yaml:"-"`
	}

	GitHubConfig struct {
		Token string `yaml:"token" env:"GITHUB_ACCESS_TOKEN"`
		// TimeoutMs is kept in milliseconds to match GITHUB_API_TIMEOUT.
		TimeoutMs int `yaml:"timeout_ms" env:"GITHUB_API_TIMEOUT" env-default:"10000"`
	}

	ScoringConfig struct {
		MaxFiles int `yaml:"max_files" env:"MAX_FILES_TO_ANALYZE" env-default:"50"`
	}

	CacheConfig struct {
		Enabled bool          `yaml:"enabled" env:"PRSCORE_CACHE_ENABLED" env-default:"true"`
		TTL     time.Duration `yaml:"ttl" env:"PRSCORE_CACHE_TTL" env-default:"1h"`
	}
)

const (
	defaultHomeDirName = ".prscore"
	configFileName     = "config.yaml"
)

// Load reads the configuration from path, or from <home>/config.yaml when path
// is empty and that file exists, with environment variables taking precedence.
// Without any file only the environment and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		home, err := resolveHomeDir(os.Getenv("PRSCORE_HOME"))
		if err != nil {
			return nil, domainErrors.ErrConfigLoad.WithError(err)
		}
		candidate := filepath.Join(home, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, domainErrors.ErrConfigLoad.
				WithContext("path", path).
				WithError(err)
		}
		cfg.PathFile = path
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, domainErrors.ErrConfigLoad.WithError(err)
	}

	home, err := resolveHomeDir(cfg.HomeDir)
	if err != nil {
		return nil, domainErrors.ErrConfigLoad.WithError(err)
	}
	cfg.HomeDir = home
	cfg.Language = GetLocaleConfig(cfg.Language)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.GitHub.TimeoutMs) * time.Millisecond
}

func (c *Config) CacheDir() string {
	return filepath.Join(c.HomeDir, "cache")
}

func (c *Config) HistoryFile() string {
	return filepath.Join(c.HomeDir, "history.json")
}

// Usage describes the recognised environment variables.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}

func resolveHomeDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve home directory: %w", err)
	}
	return filepath.Join(userHome, defaultHomeDirName), nil
}

func validateConfig(cfg *Config) error {
	var problem error
	switch {
	case cfg.Scoring.MaxFiles <= 0:
		problem = errors.New("MAX_FILES_TO_ANALYZE must be greater than 0")
	case cfg.GitHub.TimeoutMs <= 0:
		problem = errors.New("GITHUB_API_TIMEOUT must be greater than 0")
	case cfg.Cache.TTL < 0:
		problem = errors.New("PRSCORE_CACHE_TTL must not be negative")
	}

	if problem != nil {
		return domainErrors.ErrConfigInvalid.
			WithContext("detail", problem.Error()).
			WithError(problem)
	}
	return nil
}
