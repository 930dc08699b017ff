package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/freshbasket/internal/db"
	"github.com/nikolayk812/freshbasket/internal/repository"
	"github.com/nikolayk812/freshbasket/internal/server"
	"github.com/nikolayk812/freshbasket/internal/service"
)

type cfg struct {
	Port          string
	DatabaseURL   string
	SessionTTL    time.Duration
	AdminUsername string
	AdminPassword string
}

func readCfg() (cfg, error) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return cfg{}, errors.New("DATABASE_URL is required")
	}

	ttlMin, err := strconv.Atoi(getenv("SESSION_TTL_MIN", "1440"))
	if err != nil || ttlMin <= 0 {
		return cfg{}, fmt.Errorf("SESSION_TTL_MIN is invalid")
	}

	return cfg{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   databaseURL,
		SessionTTL:    time.Duration(ttlMin) * time.Minute,
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	c, err := readCfg()
	if err != nil {
		return fmt.Errorf("readCfg: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("db.Migrate: %w", err)
	}

	productRepo := repository.NewProduct(pool)
	orderRepo := repository.NewOrder(pool)
	adminRepo := repository.NewAdmin(pool)

	auth := service.NewAuth(adminRepo, c.SessionTTL, logger)
	orders := service.NewOrders(orderRepo, productRepo, logger)

	if err := auth.EnsureAdmin(ctx, c.AdminUsername, c.AdminPassword); err != nil {
		return fmt.Errorf("auth.EnsureAdmin: %w", err)
	}

	if err := service.SeedCatalog(ctx, productRepo, logger); err != nil {
		return fmt.Errorf("service.SeedCatalog: %w", err)
	}

	srv := server.New(productRepo, orders, auth, logger, server.NewMetrics())

	httpServer := &http.Server{
		Addr:    ":" + c.Port,
		Handler: srv,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("listening", slog.String("port", c.Port))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	return nil
}
