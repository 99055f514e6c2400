package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/geonorm/pkg/api"
	"github.com/hazyhaar/geonorm/pkg/geo"
	"github.com/hazyhaar/geonorm/pkg/importer"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

const version = "1.0.0"

type config struct {
	Addr   string `yaml:"addr"`
	RefDir string `yaml:"refdata_dir"`
	// SourceCheck enables periodic HEAD checks of the import sources while
	// serving. Zero disables them.
	SourceCheck time.Duration `yaml:"source_check_interval"`
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	mcpMode := fs.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg := loadConfig(*cfgPath, logger)

	// Load reference data once; the resolver runs against this immutable view.
	store := geo.NewStore(cfg.RefDir)
	if err := store.Load(); err != nil {
		logger.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}
	reg := store.Get()
	logger.Info("reference data loaded", "countries", reg.CountryCount(), "aliases", reg.AliasCount())

	if *mcpMode {
		srv := server.NewMCPServer("geonorm", version)
		api.RegisterMCPTools(srv, store, logger)
		logger.Info("geonorm MCP serving on stdio")
		if err := server.ServeStdio(srv); err != nil {
			logger.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	router := api.NewRouter(store, logger)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// SIGHUP: hot reload reference data.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SourceCheck > 0 {
		sdb := openSources(cfg.RefDir)
		defer sdb.Close()
		go importer.NewChecker(sdb, logger, cfg.SourceCheck).Start(ctx)
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading reference data")
			if err := store.Load(); err != nil {
				logger.Error("reload failed", "error", err)
			} else {
				reg := store.Get()
				logger.Info("reference data reloaded", "countries", reg.CountryCount(), "aliases", reg.AliasCount())
			}
		}
	}()

	go func() {
		logger.Info("geonorm listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:   ":8430",
		RefDir: "refdata",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
