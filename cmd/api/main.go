// Package main is the entry point for the bookshelf API server.
// It wires together configuration, the in-memory book repository, and the HTTP router.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/bookshelf-api/internal/data"
	"github.com/aoideee/bookshelf-api/internal/validator"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via
// command-line flags. Every flag defaults to an environment variable.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (PORT, default 9000)
	environment string // Runtime environment: development, staging, or production (APP_ENV)
	server      struct {
		idleTimeout     time.Duration // IDLE_TIMEOUT
		readTimeout     time.Duration // READ_TIMEOUT
		writeTimeout    time.Duration // WRITE_TIMEOUT
		shutdownTimeout time.Duration // Grace period for in-flight requests (SHUTDOWN_TIMEOUT)
	}
	limiter struct {
		rps     float64 // Tokens added per second per client IP (LIMITER_RPS)
		burst   int     // Bucket capacity per client IP (LIMITER_BURST)
		enabled bool    // Off unless LIMITER_ENABLED is set
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig
	logger *slog.Logger
	models data.Models
}

func main() {
	// A missing .env file is fine; the process environment is used as-is.
	_ = godotenv.Load()

	settings, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stdout, settings.environment)

	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(),
	}

	logger.Info("book repository initialised", "version", appVersion)

	err = appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// newLogger writes human-readable text outside production and JSON in production.
func newLogger(w io.Writer, environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// parseConfig reads flags from args, using getenv to resolve their defaults.
func parseConfig(args []string, getenv func(string) string) (serverConfig, error) {
	var settings serverConfig

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.IntVar(&settings.port, "port", envInt(getenv, "PORT", 9000), "Server port")
	fs.StringVar(&settings.environment, "env", envString(getenv, "APP_ENV", "development"), "Environment(development|staging|production)")
	fs.DurationVar(&settings.server.idleTimeout, "idle-timeout", envDuration(getenv, "IDLE_TIMEOUT", time.Minute), "HTTP keep-alive idle timeout")
	fs.DurationVar(&settings.server.readTimeout, "read-timeout", envDuration(getenv, "READ_TIMEOUT", 5*time.Second), "HTTP request read timeout")
	fs.DurationVar(&settings.server.writeTimeout, "write-timeout", envDuration(getenv, "WRITE_TIMEOUT", 10*time.Second), "HTTP response write timeout")
	fs.DurationVar(&settings.server.shutdownTimeout, "shutdown-timeout", envDuration(getenv, "SHUTDOWN_TIMEOUT", 20*time.Second), "Graceful shutdown deadline")
	fs.Float64Var(&settings.limiter.rps, "limiter-rps", envFloat(getenv, "LIMITER_RPS", 2), "Rate limiter maximum requests per second")
	fs.IntVar(&settings.limiter.burst, "limiter-burst", envInt(getenv, "LIMITER_BURST", 4), "Rate limiter maximum burst")
	fs.BoolVar(&settings.limiter.enabled, "limiter-enabled", envBool(getenv, "LIMITER_ENABLED", false), "Enable rate limiter")

	if err := fs.Parse(args); err != nil {
		return serverConfig{}, err
	}

	v := validator.New()
	v.Check(settings.port > 0 && settings.port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.In(settings.environment, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(settings.server.idleTimeout > 0, "idle-timeout", "must be greater than zero")
	v.Check(settings.server.readTimeout > 0, "read-timeout", "must be greater than zero")
	v.Check(settings.server.writeTimeout > 0, "write-timeout", "must be greater than zero")
	v.Check(settings.server.shutdownTimeout > 0, "shutdown-timeout", "must be greater than zero")
	if settings.limiter.enabled {
		v.Check(settings.limiter.rps > 0, "limiter-rps", "must be greater than zero")
		v.Check(settings.limiter.burst > 0, "limiter-burst", "must be greater than zero")
	}
	if !v.Valid() {
		return serverConfig{}, errors.New("invalid configuration: " + data.DescribeErrors(v.Errors))
	}

	return settings, nil
}

func envString(getenv func(string) string, key, fallback string) string {
	if s := getenv(key); s != "" {
		return s
	}
	return fallback
}

func envInt(getenv func(string) string, key string, fallback int) int {
	i, err := strconv.Atoi(getenv(key))
	if err != nil {
		return fallback
	}
	return i
}

func envFloat(getenv func(string) string, key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(getenv(key), 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(getenv func(string) string, key string, fallback bool) bool {
	b, err := strconv.ParseBool(getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(getenv func(string) string, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
