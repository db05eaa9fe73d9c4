package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tinytelemetry/coinwatch/internal/dashboard"
	"github.com/tinytelemetry/coinwatch/internal/duckdb"
	"github.com/tinytelemetry/coinwatch/internal/logging"
	"github.com/tinytelemetry/coinwatch/internal/marketdata"
	"github.com/tinytelemetry/coinwatch/internal/tui"
	"github.com/tinytelemetry/coinwatch/internal/watchlist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/coinwatch/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Coinwatch - Crypto Price Dashboard\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	// A .env next to the binary may carry COINWATCH_* overrides.
	_ = godotenv.Load()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg appConfig) error {
	log, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logCloser.Close()

	log.WithFields(logrus.Fields{
		"version":  version,
		"config":   cfg.ConfigPath,
		"currency": cfg.currency,
		"storage":  cfg.StorageBackend,
	}).Info("coinwatch starting")

	if err := tui.InitializeSkin(cfg.Skin, cfg.ConfigDir); err != nil {
		log.WithError(err).WithField("skin", cfg.Skin).Warn("failed to load skin, using default")
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
	}

	kv, closeKV, err := openKV(cfg, log.WithField("component", "storage"))
	if err != nil {
		return err
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.WithError(err).Warn("closing watchlist storage")
		}
	}()

	store := watchlist.NewStore(kv, cfg.WatchlistKey, log.WithField("component", "watchlist"))
	client := marketdata.NewClient(cfg.APIBaseURL,
		marketdata.WithTimeout(cfg.RequestTimeout),
		marketdata.WithUserAgent("coinwatch/"+version),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coord := dashboard.New(client, store, dashboard.Options{
		Context:         ctx,
		Currency:        cfg.currency,
		DarkMode:        cfg.DarkMode(),
		FocusDelay:      cfg.FocusDelay,
		FocusErrorDelay: cfg.FocusErrorDelay,
		Logger:          log.WithField("component", "dashboard"),
	})

	dash := tui.NewDashboardModel(coord, tui.Config{
		RefreshInterval:    cfg.RefreshInterval,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	app := tui.NewApp(tui.NewDashboardPage(dash))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	log.Info("coinwatch stopped")
	return nil
}

// openKV opens the configured watchlist backend.
func openKV(cfg appConfig, log logrus.FieldLogger) (watchlist.KV, func() error, error) {
	switch cfg.StorageBackend {
	case storageDuckDB:
		db, err := duckdb.NewStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening duckdb at %s: %w", cfg.DBPath, err)
		}
		fields := logrus.Fields{"backend": storageDuckDB, "path": db.DBPath()}
		if version, pending, err := db.SchemaStatus(); err != nil {
			log.WithError(err).WithFields(fields).Warn("reading schema status")
		} else {
			fields["schema_version"] = version
			fields["pending_migrations"] = pending
		}
		log.WithFields(fields).Info("watchlist storage opened")
		return db, db.Close, nil
	default:
		kv, err := watchlist.OpenFileKV(cfg.StatePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening state file %s: %w", cfg.StatePath, err)
		}
		log.WithFields(logrus.Fields{"backend": storageFile, "path": kv.Path()}).Info("watchlist storage opened")
		return kv, func() error { return nil }, nil
	}
}
