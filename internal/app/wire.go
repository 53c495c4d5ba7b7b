package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"nexus/internal/api"
	"nexus/internal/config"
	"nexus/internal/domain"
	"nexus/internal/logging"
	"nexus/internal/services/dashboard"
	sessionsvc "nexus/internal/services/session"
	"nexus/internal/services/transfer"
	"nexus/internal/store"
)

// NavigatorFunc adapts a function to domain.Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Wire bundles the stores, services and clients for the CLI.
type Wire struct {
	Credentials  domain.CredentialStore
	API          *api.Client
	Session      *sessionsvc.Manager
	Dashboard    *dashboard.Loader
	Transactions *transfer.TransactionImporter
	Budgets      *transfer.BudgetImporter

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	// Credential store
	kv, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	creds := store.NewCredentials(kv)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	nav := cfg.Navigator
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}

	// The transport reports 401s to the session manager, which owns navigation.
	var mgr *sessionsvc.Manager
	client := api.New(
		api.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout},
		creds,
		api.WithHTTPClient(httpClient),
		api.WithLogger(logging.For(log, logging.ComponentAPI)),
		api.WithSessionExpiredHandler(func() { mgr.Expire() }),
	)
	mgr = sessionsvc.New(client, creds, nav, sessionsvc.WithLogger(logging.For(log, logging.ComponentSession)))

	transferLog := logging.For(log, logging.ComponentTransfer)
	return &Wire{
		Credentials:  creds,
		API:          client,
		Session:      mgr,
		Dashboard:    dashboard.New(client, dashboard.WithLogger(logging.For(log, logging.ComponentDashboard))),
		Transactions: transfer.NewTransactionImporter(client, client, transferLog),
		Budgets:      transfer.NewBudgetImporter(client, transferLog),
		closer:       closer,
	}, nil
}

func openStore(cfg Config) (domain.KeyValueStore, io.Closer, error) {
	settings := config.Config{Home: cfg.Home, Store: cfg.Store, Passphrase: cfg.Passphrase}
	path := settings.CredentialPath()

	switch cfg.Store {
	case config.StoreSQLite:
		kv, err := store.NewSQLiteKV(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
		}
		return kv, kv, nil
	case config.StoreFile, "":
		var opts []store.FileOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		return store.NewFileKV(path, opts...), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Close releases the credential store.
func (w *Wire) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
