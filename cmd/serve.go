package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"triage_queue/internal/config"
	"triage_queue/internal/handlers"
	"triage_queue/internal/logger"
	"triage_queue/internal/queue"
	"triage_queue/internal/storage"
	"triage_queue/internal/tasks"
	"triage_queue/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var memory bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API и каналы обновлений",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), memory)
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "хранить пациентов в памяти вместо PostgreSQL")
	return cmd
}

func runServer(parent context.Context, memory bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !memory {
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStore(cfg, memory, log)
	if err != nil {
		return err
	}

	hub := ws.NewHub(cfg.WSSendBuffer, cfg.WSWriteTimeout, log)
	go hub.Run(ctx)

	svc := queue.NewService(store, hub, log)
	if client := storage.InitRedis(cfg); client != nil {
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis недоступен, кэш очереди отключён")
		} else {
			svc.SetCache(storage.NewRedisCache(client), cfg.CacheTTL)
			log.Info().Str("addr", cfg.RedisAddr).Msg("кэш очереди подключён")
		}
	}

	scheduler, err := tasks.InitScheduler(cfg.LoadReportSpec, svc, log)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	router := handlers.NewRouter(handlers.New(svc, log), hub, cfg.CORSOrigins, log)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Bool("memory", memory).Msg("сервер запущен")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg *config.Config, memory bool, log zerolog.Logger) (queue.Store, error) {
	if memory {
		log.Info().Msg("используется хранилище в памяти")
		return storage.NewMemoryStore(), nil
	}

	db, err := storage.ConnectDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := storage.Migrate(db); err != nil {
		return nil, err
	}
	return storage.NewGormStore(db), nil
}
