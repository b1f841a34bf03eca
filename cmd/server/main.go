package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/teamrespawntv/halo-quotes/internal/config"
	"github.com/teamrespawntv/halo-quotes/internal/logging"
	"github.com/teamrespawntv/halo-quotes/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	envErr := config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "halo-quotes",
		Version: appVersion,
	})
	if envErr != nil {
		logger.Warn("failed to load .env file", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}
