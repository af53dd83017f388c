package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/briidgedotone/narra/internal/cache"
	"github.com/briidgedotone/narra/internal/command"
	"github.com/briidgedotone/narra/internal/command/commandimpl"
	"github.com/briidgedotone/narra/internal/contentapi/contentapiimpl"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/internal/migrations"
	"github.com/briidgedotone/narra/internal/repositories/board"
	"github.com/briidgedotone/narra/internal/repositories/boardpost"
	repositories "github.com/briidgedotone/narra/internal/repositories/fx"
	"github.com/briidgedotone/narra/internal/repositories/memory"
	"github.com/briidgedotone/narra/internal/repositories/post"
	"github.com/briidgedotone/narra/internal/repositories/profile"
	"github.com/briidgedotone/narra/internal/telegram"
	"github.com/briidgedotone/narra/internal/telegram/telegramimpl"
	"github.com/briidgedotone/narra/internal/transcript"
	"github.com/briidgedotone/narra/internal/transcript/transcriptimpl"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/briidgedotone/narra/pkg/pgx"
	"go.uber.org/fx"
)

// Core is the ingestion pipeline without a datastore.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
	),
	cache.Module,
	contentapiimpl.Module,
	ingest.Module,
)

// PgxStorage migrates Postgres and provides the pgx repositories.
var PgxStorage = fx.Options(
	fx.Provide(pgx.New),
	repositories.Module,
	fx.Invoke(func(c *config.Config, log logger.Logger) error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := migrations.Up(ctx, c.GetDSN()); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Info("Database migrations applied")
		return nil
	}),
)

// MemoryStorage provides process-local repositories for dry runs.
var MemoryStorage = fx.Options(
	fx.Provide(
		memory.New,
		func(s *memory.Store) profile.Repository { return s.Profiles() },
		func(s *memory.Store) post.Repository { return s.Posts() },
		func(s *memory.Store) boardpost.Repository { return s.BoardPosts() },
		func(s *memory.Store) board.Repository { return s.Boards() },
	),
)

// Module is the long-running service: operator bot, transcript backfill
// and a health endpoint.
var Module = fx.Options(
	Core,
	PgxStorage,
	fx.Provide(
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	transcriptimpl.Module,
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, tgClient telegram.Client,
	cmdClient command.Client, backfiller transcript.Backfiller) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newHealthServer(log, cfg.App.Port)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()

			go func() {
				if err := cmdClient.HandleCommand(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Command loop stopped", "error", err)
					tgClient.SendMessageToUser("Command loop stopped: " + err.Error())
				}
			}()

			if err := backfiller.Schedule(ctx); err != nil {
				log.Error("Transcript backfill schedule error", "error", err)
				tgClient.SendMessageToUser("Transcript backfill schedule error: " + err.Error())
			}

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if err := backfiller.Stop(); err != nil {
				log.Warn("Failed to stop transcript scheduler", "error", err)
			}
			return srv.Shutdown(stopCtx)
		},
	})
}

func newHealthServer(log logger.Logger, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
