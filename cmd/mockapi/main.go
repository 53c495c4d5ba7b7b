package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"nexus/internal/logging"
	"nexus/internal/mockapi"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	addr := pflag.String("addr", envOr("MOCKAPI_ADDR", ":8000"), "listen address")
	debug := pflag.Bool("debug", os.Getenv("MOCKAPI_DEBUG") == "true", "gin debug mode")
	logLevel := pflag.String("log-level", envOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	logFormat := pflag.String("log-format", envOr("LOG_FORMAT", "text"), "text or json")
	pflag.Parse()

	log, err := logging.New(os.Stderr, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mockapi:", err)
		os.Exit(2)
	}

	ttl := mockapi.DefaultTokenTTL
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			log.Error("invalid ACCESS_TOKEN_EXPIRE_MINUTES", "value", v)
			os.Exit(2)
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	// The real backend sends amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	srv := mockapi.NewServer(mockapi.Config{
		Secret:   envOr("SECRET_KEY", mockapi.DefaultSecret),
		TokenTTL: ttl,
		Debug:    *debug,
	}, mockapi.WithLogger(log))

	server := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("mockapi listening", "address", *addr, "token_ttl", ttl)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("mockapi server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down mockapi")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("mockapi shutdown error", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
