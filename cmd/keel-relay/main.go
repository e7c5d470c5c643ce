package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keel-relay/internal/config"
	"keel-relay/internal/discord"
	"keel-relay/internal/logging"
	"keel-relay/internal/relay"
	httptransport "keel-relay/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	logCfg, err := config.LoadLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load log config: %v\n", err)
		os.Exit(1)
	}
	closeLog, err := logging.Init(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}
	if _, err := discord.Validate(cfg.DiscordWebhookURL); err != nil {
		log.Warn().Err(err).Msg("discord webhook url unusable; notifications will fail until it is fixed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server stopped")
		_ = closeLog()
		os.Exit(1)
	}
	log.Info().Msg("server shut down cleanly")
}

func run(ctx context.Context, cfg config.ServerConfig) error {
	client := discord.NewClient(discord.NewHTTPClient(cfg.DiscordTimeout()))
	svc := relay.NewService(client, relay.Options{
		WebhookURL: cfg.DiscordWebhookURL,
		Username:   cfg.DiscordUsername,
		Timeout:    cfg.DiscordTimeout(),
	})
	r := httptransport.NewRouter(svc, log.Logger)
	httptransport.LogRoutes(r, log.Logger)

	servers := []*http.Server{{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.DiscordTimeout() + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           httptransport.NewMetricsRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		ln, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			shutdown(servers, cfg.ShutdownTimeout())
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		log.Info().Str("addr", srv.Addr).Msg("http listening")
		go func(srv *http.Server, ln net.Listener) {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv, ln)
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		return shutdown(servers, cfg.ShutdownTimeout())
	case err := <-errCh:
		shutdown(servers, cfg.ShutdownTimeout())
		return err
	}
}

func shutdown(servers []*http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
		}
	}
	return errors.Join(errs...)
}
