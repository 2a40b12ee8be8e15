package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/vbonduro/stock2profit/internal/auth"
	"github.com/vbonduro/stock2profit/internal/config"
	"github.com/vbonduro/stock2profit/internal/db"
	"github.com/vbonduro/stock2profit/internal/filestore/local"
	"github.com/vbonduro/stock2profit/internal/logging"
	"github.com/vbonduro/stock2profit/internal/seed"
	"github.com/vbonduro/stock2profit/internal/service"
	"github.com/vbonduro/stock2profit/internal/session"
	"github.com/vbonduro/stock2profit/internal/store"
	"github.com/vbonduro/stock2profit/internal/web"
	"github.com/vbonduro/stock2profit/internal/web/templates"
)

const (
	testModeSecret  = "stock2profit-test-mode"
	purgeInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	app := &cli.App{
		Name:  "stock2profit",
		Usage: "inventory and sales dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address, overrides LISTEN_ADDR"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the web server (default)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides LISTEN_ADDR"},
				},
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "load sample records into empty tables",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "YAML fixtures to load instead of the bundled ones"},
				},
				Action: seedDatabase,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg := config.Load()
	if addr := c.String("addr"); addr != "" {
		cfg.ListenAddr = addr
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	secret := cfg.JWTSecret
	if secret == "" {
		if !cfg.TestMode {
			return errors.New("JWT_SECRET is required")
		}
		logger.Warn("JWT_SECRET not set, using the test mode secret")
		secret = testModeSecret
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeDB(database, logger)

	users := store.NewUserStore(database)
	inventory := store.NewInventoryStore(database)
	activity := store.NewActivityStore(database)
	alerts := store.NewAlertStore(database)
	transactions := store.NewTransactionStore(database)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedOnStart {
		fixtures, err := seed.Load()
		if err != nil {
			return err
		}
		if err := seed.NewSeeder(inventory, activity, alerts, logger).Apply(ctx, fixtures); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	receipts, err := local.New(cfg.ReceiptPath)
	if err != nil {
		return fmt.Errorf("failed to initialize receipt store: %w", err)
	}

	workspaces := session.NewRegistry()
	workspaces.StartPurge(ctx, cfg.SessionTTL, purgeInterval)

	server := web.NewServer(web.Services{
		Auth:       auth.NewService(users),
		Tokens:     auth.NewTokens(secret, cfg.SessionTTL),
		Workspaces: workspaces,
		Dashboard:  service.NewDashboardService(inventory, activity, alerts, cfg.LowStockThreshold),
		Inventory:  service.NewInventoryService(inventory, cfg.LowStockThreshold),
		Sales:      service.NewSalesService(transactions, activity, receipts, cfg.CurrencySymbol, logger),
	}, templates.FS, web.Options{
		Currency:      cfg.CurrencySymbol,
		SecureCookies: cfg.SecureCookies,
	}, logger)

	srv := server.NewHTTPServer(cfg.ListenAddr)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func seedDatabase(c *cli.Context) error {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	fixtures, err := loadFixtures(c.String("file"))
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer closeDB(database, logger)

	seeder := seed.NewSeeder(
		store.NewInventoryStore(database),
		store.NewActivityStore(database),
		store.NewAlertStore(database),
		logger,
	)
	return seeder.Apply(c.Context, fixtures)
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return seed.Parse(data)
}

func closeDB(database *sql.DB, logger *slog.Logger) {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
}
