package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"myblog/config"
	"myblog/internal/adapter/out/storage/sqlite"
	"myblog/internal/app"
	"myblog/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info").Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	ctx = logger.WithLogger(ctx, log)

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "init-db":
		if err := runInitDB(cfg); err != nil {
			log.Error("init-db failed", "error", err)
			os.Exit(1)
		}
		log.Info("database initialized", "path", cfg.Storage.Path)

	case "serve":
		a, err := app.NewApp(ctx, cfg)
		if err != nil {
			log.Error("init app", "error", err)
			os.Exit(1)
		}
		if err := a.Run(ctx); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}

	default:
		log.Error("unknown command", "command", command)
		os.Exit(2)
	}
}

// runInitDB drops and recreates both tables. Existing posts and comments
// are destroyed.
func runInitDB(cfg config.Config) error {
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	return sqlite.Reset(db)
}
