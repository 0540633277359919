// Package main provides a standalone health probe for container health checks
// and monitoring scripts. It either queries a running server over HTTP or,
// with -local, checks the configured database and redis directly.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nutrimate/v1/internal/infrastructure/cache"
	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/postgres"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/sqlite"
	"github.com/nutrimate/v1/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Options holds command-line configuration
type Options struct {
	URL        string
	ConfigPath string
	Timeout    time.Duration
	RetryDelay time.Duration
	RetryCount int
	Verbose    bool
	Local      bool
}

func main() {
	opts := parseFlags()

	if opts.Local {
		os.Exit(runLocalHealthCheck(opts))
	}
	os.Exit(runRemoteHealthCheck(opts))
}

func parseFlags() Options {
	var opts Options

	flag.StringVar(&opts.URL, "url", "http://localhost:8080/health/ready", "Health endpoint URL")
	flag.StringVar(&opts.ConfigPath, "config", "", "Configuration file path, used with -local")
	flag.DurationVar(&opts.Timeout, "timeout", 5*time.Second, "Request timeout")
	flag.DurationVar(&opts.RetryDelay, "retry-delay", time.Second, "Delay between retries")
	flag.IntVar(&opts.RetryCount, "retry", 0, "Number of retries on failure")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Print the response body")
	flag.BoolVar(&opts.Local, "local", false, "Check dependencies directly instead of calling the server")
	flag.Parse()

	return opts
}

func runRemoteHealthCheck(opts Options) int {
	client := &http.Client{Timeout: opts.Timeout}

	var lastErr error
	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(opts.RetryDelay)
		}

		code, err := probe(client, opts)
		if err == nil {
			return code
		}
		lastErr = err
	}

	fmt.Fprintf(os.Stderr, "health check failed: %v\n", lastErr)
	return exitCodeError
}

func probe(client *http.Client, opts Options) (int, error) {
	resp, err := client.Get(opts.URL)
	if err != nil {
		return exitCodeError, err
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return exitCodeError, fmt.Errorf("invalid health response: %w", err)
	}

	if opts.Verbose {
		out, _ := json.MarshalIndent(body, "", "  ")
		fmt.Println(string(out))
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("%s: %v (HTTP %d)\n", opts.URL, body["status"], resp.StatusCode)
		return exitCodeFailure, nil
	}

	fmt.Printf("%s: %v\n", opts.URL, body["status"])
	return exitCodeSuccess, nil
}

func runLocalHealthCheck(opts Options) int {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return exitCodeError
	}

	log := zap.NewNop()
	hc := healthcheck.New(cfg.App.Version, log)
	hc.SetCacheTTL(0)

	db, err := openDatabase(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		return exitCodeFailure
	}
	sqlDB, err := db.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		return exitCodeFailure
	}
	defer sqlDB.Close()
	hc.Register("database", healthcheck.NewDatabaseChecker(sqlDB))

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to redis: %v\n", err)
			return exitCodeFailure
		}
		defer client.Close()
		hc.Register("redis", healthcheck.NewPingChecker("redis", client))
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	response := hc.Check(ctx)
	for _, check := range response.Checks {
		line := fmt.Sprintf("%-10s %s", check.Name, check.Status)
		if check.Message != "" {
			line += " - " + check.Message
		}
		fmt.Println(line)
	}

	if response.Status == healthcheck.StatusUnhealthy {
		return exitCodeFailure
	}
	return exitCodeSuccess
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Driver == "postgres" {
		cm, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return nil, err
		}
		return cm.GetDB(), nil
	}
	return sqlite.SetupDatabase(cfg.Database.Path, postgres.GORMLogLevel("silent"))
}
