package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"myblog/config"
	"myblog/internal/adapter/in/rest"
	inmemorybus "myblog/internal/adapter/out/pubsub/inmemory"
	memstore "myblog/internal/adapter/out/storage/inmemory"
	"myblog/internal/adapter/out/storage/sqlite"
	"myblog/internal/service"
	"myblog/pkg/logger"

	"github.com/jmoiron/sqlx"
)

type App struct {
	cfg config.Config
	srv *http.Server
	db  *sqlx.DB
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		postStorage    service.PostStorage
		commentStorage service.CommentStorage
		db             *sqlx.DB
	)

	switch cfg.Storage.Type {
	case "sqlite":
		var err error
		db, err = sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		if err := sqlite.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate storage: %w", err)
		}
		postStorage = sqlite.NewPostStorage(db)
		commentStorage = sqlite.NewCommentStorage(db)

	default:
		postStorage = memstore.NewPostStorage()
		commentStorage = memstore.NewCommentStorage()
	}

	bus := inmemorybus.New(0)

	postSvc := service.NewPostService(postStorage)
	commentSvc := service.NewCommentService(commentStorage, postStorage, bus)

	keepAlive := time.Duration(cfg.SSE.KeepAliveSeconds) * time.Second
	mux := rest.NewRouter(postSvc, commentSvc, keepAlive, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	// No WriteTimeout: the comment SSE stream holds its response open.
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized", "addr", addr, "storage", cfg.Storage.Type)
	return &App{cfg: cfg, srv: srv, db: db}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shCtx)
		a.closeDB(log)
		return nil

	case err := <-errCh:
		a.closeDB(log)
		return err
	}
}

func (a *App) closeDB(log *slog.Logger) {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		log.Error("close db", "error", err)
	}
}
