package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/cea/infra/breakers"
	"github.com/sawpanic/cea/internal/alerts"
	"github.com/sawpanic/cea/internal/application/advisor"
	"github.com/sawpanic/cea/internal/companies"
	"github.com/sawpanic/cea/internal/config"
	"github.com/sawpanic/cea/internal/domain/sectors"
	httpserver "github.com/sawpanic/cea/internal/interfaces/http"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Starts the page and API server. Flags override values from the config file.",
		RunE:  runServe,
	}

	cmd.Flags().String("config", "", "Path to YAML config file")
	cmd.Flags().Int("port", 0, "Listen port (overrides config and HTTP_PORT)")
	cmd.Flags().String("host", "", "Listen host (overrides config)")
	cmd.Flags().String("static-dir", "", "Directory holding the page documents")
	cmd.Flags().String("redis", "", "Redis address for alert forwarding")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	forwarder, forwardingState, closeForwarder := buildForwarder(cfg)
	defer closeForwarder()

	alertLog := alerts.NewLog()
	svc := advisor.New(sectors.NewDataset(), alertLog, forwarder)
	registry := companies.NewRegistry()

	server := httpserver.NewServer(cfg, httpserver.Deps{
		Advisor:         svc,
		Companies:       registry,
		ForwardingState: forwardingState,
	}, version)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("home", fmt.Sprintf("http://%s/", server.GetAddress())).
			Str("api", fmt.Sprintf("http://%s/api/cea", server.GetAddress())).
			Str("metrics", fmt.Sprintf("http://%s/metrics", server.GetAddress())).
			Msg("CEA endpoints available")
		serverErr <- server.Start()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().
		Int("alerts", alertLog.Len()).
		Int("companies", registry.Len()).
		Msg("Server shutdown complete; in-memory state discarded")
	return nil
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("static-dir") {
		cfg.StaticDir, _ = flags.GetString("static-dir")
	}
	if flags.Changed("redis") {
		cfg.Alerts.Redis.Addr, _ = flags.GetString("redis")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// buildForwarder returns the alert forwarder, a status reporter for /health and a close
// func. Without a Redis address alerts stay in memory only.
func buildForwarder(cfg *config.Config) (alerts.Forwarder, func() string, func()) {
	rc := cfg.Alerts.Redis
	if rc.Addr == "" {
		return alerts.NopForwarder{}, nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	breaker := breakers.New(breakers.Settings{
		Name:                "redis_alerts",
		ConsecutiveFailures: cfg.Alerts.Breaker.ConsecutiveFailures,
		OpenTimeout:         cfg.Alerts.Breaker.OpenTimeout,
	})
	fwd := alerts.NewRedisForwarder(client, rc.Channel, breaker)

	log.Info().
		Str("addr", rc.Addr).
		Str("channel", rc.Channel).
		Msg("Alert forwarding to Redis enabled")

	state := func() string { return "redis:" + breaker.State() }
	closeFn := func() {
		if err := fwd.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
	return fwd, state, closeFn
}
