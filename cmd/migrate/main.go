// Package main applies the embedded postgres migrations
//
// Usage:
//
//	migrate [-config file] up|down|reset|status|version
//	migrate [-config file] steps N
//	migrate [-config file] force VERSION
//	migrate create NAME
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/nutrimate/v1/internal/infrastructure/config"
	"github.com/nutrimate/v1/internal/infrastructure/persistence/migrations"
	"github.com/nutrimate/v1/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	dir := flag.String("dir", "internal/infrastructure/persistence/migrations/sql", "directory for new migration files")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] up|down|reset|status|version|steps N|force V|create NAME\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *dir, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(configPath, dir string, args []string) error {
	cmd := args[0]

	if cmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("create requires a migration name")
		}
		up, down, err := migrations.CreateMigration(dir, args[1])
		if err != nil {
			return err
		}
		fmt.Println("created", up)
		fmt.Println("created", down)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("migrations target postgres; database.driver is %q (sqlite schemas are created on startup)", cfg.Database.Driver)
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: "console"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	m, err := migrations.Open(cfg.GetDSN(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	switch cmd {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "reset":
		return m.Reset()
	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		return m.Steps(n)
	case "force":
		v, err := intArg(args, "force")
		if err != nil {
			return err
		}
		return m.Force(v)
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	case "status":
		status, err := m.Status()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func intArg(args []string, cmd string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number", cmd)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", cmd, err)
	}
	return n, nil
}
