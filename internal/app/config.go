package app

import (
	"log/slog"
	"time"

	"nexus/internal/api"
	"nexus/internal/config"
	"nexus/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        // config directory, e.g. $HOME/.nexus
	APIURL     string        // backend base URL, e.g. http://localhost:8000
	Store      string        // credential backend: config.StoreFile or config.StoreSQLite
	Passphrase string        // optional; seals the file store
	Timeout    time.Duration // per-request timeout; 0 keeps the transport default

	HTTP      api.Doer         // optional; defaults to an *http.Client with Timeout
	Navigator domain.Navigator // optional; receives the login route on expiry
	Logger    *slog.Logger     // optional; defaults to a discarding logger
}

// FromSettings maps resolved CLI settings onto a wiring Config.
func FromSettings(s *config.Config) Config {
	return Config{
		Home:       s.Home,
		APIURL:     s.APIURL,
		Store:      s.Store,
		Passphrase: s.Passphrase,
		Timeout:    s.Timeout,
	}
}
