package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/nofa/openclaw"
	"github.com/nofa/openclaw/tracing"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	config := openclaw.DefaultConfig()
	if *configPath != "" {
		loaded, err := openclaw.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load config")
		}
		config = loaded
	}

	if config.Tracing.Enabled {
		if err := tracing.Init("openclaw", "1.0.0", config.Tracing.OutputFile); err != nil {
			logger.Fatal().Err(err).Msg("failed to init tracing")
		}
	}

	srv, err := openclaw.New(
		openclaw.WithConfig(config),
		openclaw.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build service")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	srv.Start(ctx)
	defer srv.Shutdown()

	server := &http.Server{Addr: config.Server.Addr, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info().Str("addr", config.Server.Addr).Msg("openclaw gateway listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
