package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func validConfig() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		Home:      "/tmp/nexus",
		Store:     StoreFile,
		LogLevel:  "warn",
		LogFormat: "text",
		Output:    OutputTable,
	}
}

func TestGetReturnsViperValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(KeyAPIURL, "https://finance.example.com")
	viper.Set(KeyStore, StoreSQLite)
	viper.Set(KeyTimeout, "15s")
	viper.Set(KeyOutput, OutputJSON)

	cfg, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg.APIURL != "https://finance.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("Store = %q", cfg.Store)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.Output != OutputJSON {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestInitDefaultsEnvAndFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("output: yaml\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NEXUS_HOME", home)
	t.Setenv("NEXUS_API_URL", "http://127.0.0.1:9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-format", "text", "")
	if err := flags.Parse([]string{"--log-format=json"}); err != nil {
		t.Fatal(err)
	}

	if err := Init(flags); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	cfg, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if cfg.Home != home {
		t.Errorf("Home = %q, want %q", cfg.Home, home)
	}
	if cfg.APIURL != "http://127.0.0.1:9000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Output != OutputYAML || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: output=%q log_level=%q", cfg.Output, cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json from flag", cfg.LogFormat)
	}
	if cfg.Store != StoreFile {
		t.Errorf("Store = %q, want default", cfg.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cfg := validConfig()
	cfg.APIURL = "localhost:8000"
	cfg.Store = "redis"
	cfg.Output = "xml"
	cfg.Timeout = -time.Second

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 4 {
		t.Errorf("got %d problems, want 4: %v", n, err)
	}
}

func TestCredentialPath(t *testing.T) {
	cfg := validConfig()
	if got := cfg.CredentialPath(); got != filepath.Join("/tmp/nexus", "session.json") {
		t.Errorf("file path = %q", got)
	}
	cfg.Passphrase = "secret"
	if got := cfg.CredentialPath(); got != filepath.Join("/tmp/nexus", "session.enc") {
		t.Errorf("sealed path = %q", got)
	}
	cfg.Store = StoreSQLite
	if got := cfg.CredentialPath(); got != filepath.Join("/tmp/nexus", "nexus.db") {
		t.Errorf("sqlite path = %q", got)
	}
}
