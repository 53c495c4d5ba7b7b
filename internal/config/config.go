// Package config loads CLI settings from flags, NEXUS_* environment
// variables, an optional .env file and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys.
const (
	KeyAPIURL     = "api_url"
	KeyHome       = "home"
	KeyStore      = "store"
	KeyPassphrase = "passphrase"
	KeyTimeout    = "timeout"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
	KeyOutput     = "output"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

const (
	EnvPrefix      = "NEXUS"
	DefaultAPIURL  = "http://localhost:8000"
	configFileName = "config"
)

// Config holds the resolved settings.
type Config struct {
	APIURL     string        `mapstructure:"api_url"`
	Home       string        `mapstructure:"home"`
	Store      string        `mapstructure:"store"`
	Passphrase string        `mapstructure:"passphrase"`
	Timeout    time.Duration `mapstructure:"timeout"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"`
	Output     string        `mapstructure:"output"`
}

// DefaultHome is $HOME/.nexus, or .nexus when no home directory is known.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nexus"
	}
	return filepath.Join(home, ".nexus")
}

// Init prepares the global viper instance: defaults, environment, .env,
// flag bindings and the config file under the resolved home directory.
func Init(flags *pflag.FlagSet) error {
	_ = godotenv.Load()

	viper.SetDefault(KeyAPIURL, DefaultAPIURL)
	viper.SetDefault(KeyHome, DefaultHome())
	viper.SetDefault(KeyStore, StoreFile)
	viper.SetDefault(KeyTimeout, time.Duration(0))
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")
	viper.SetDefault(KeyOutput, OutputTable)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := viper.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(expandHome(viper.GetString(KeyHome)))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Get unmarshals the current viper state.
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Home = expandHome(cfg.Home)
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s must be an absolute http(s) URL, got %q", KeyAPIURL, c.APIURL))
	}
	if strings.TrimSpace(c.Home) == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyHome))
	}
	if c.Store != StoreFile && c.Store != StoreSQLite {
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q", KeyStore, StoreFile, StoreSQLite, c.Store))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyTimeout))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%s must be one of debug, info, warn, error; got %q", KeyLogLevel, c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, c.LogFormat))
	}
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("%s must be table, json or yaml, got %q", KeyOutput, c.Output))
	}
	return errors.Join(errs...)
}

// CredentialPath is where the credential store lives.
func (c *Config) CredentialPath() string {
	switch {
	case c.Store == StoreSQLite:
		return filepath.Join(c.Home, "nexus.db")
	case c.Passphrase != "":
		return filepath.Join(c.Home, "session.enc")
	default:
		return filepath.Join(c.Home, "session.json")
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
