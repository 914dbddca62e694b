package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpslabs/fps-backend/internal/app/chat"
	"github.com/fpslabs/fps-backend/internal/app/gateway"
	"github.com/fpslabs/fps-backend/internal/app/matchserver"
	"github.com/fpslabs/fps-backend/internal/shared/config"
	"github.com/fpslabs/fps-backend/internal/shared/store"
	"github.com/fpslabs/fps-backend/internal/shared/transport"
	"github.com/fpslabs/fps-backend/internal/shared/utils"
)

func main() {
	utils.LoadEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	hub := gateway.NewHub(logger)

	var notifierOpts []gateway.EventNotifierOption
	sessions := store.SessionStore(store.NewMemorySessionStore())
	ratings := store.RatingStore(store.NewMemoryRatingStore())
	messages := chat.MessageStore(chat.NewMemoryMessageStore())

	// Redis is optional; without it everything stays in process.
	if cfg.Redis.Addr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()

		sessions = store.NewRedisSessionStore(rdb)
		ratings = store.NewRedisRatingStore(rdb)
		messages = chat.NewRedisMessageStore(rdb)
		notifierOpts = append(notifierOpts,
			gateway.WithPlayerProducer(transport.NewRedisDynamicMessageProducer(rdb, transport.PlayerStream)),
			gateway.WithSessionProducer(transport.NewRedisMessageProducer(rdb, transport.SessionEventStream)),
			gateway.WithRatingProducer(transport.NewRedisMessageProducer(rdb, transport.RatingEventStream)),
			gateway.WithRoomProducer(transport.NewRedisDynamicMessageProducer(rdb, transport.RoomStream)),
		)
		logger.Info("using redis-backed stores", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Info("using in-memory stores")
	}

	notifier := gateway.NewEventNotifier(hub, logger, notifierOpts...)
	matches := matchserver.NewService(store.NewMemoryQueueStore(), sessions, ratings, notifier, logger)
	chatService := chat.NewService(messages, notifier, cfg.Chat.HistoryLimit, logger)
	scanner := matchserver.NewScanner(matches, cfg.Scan.Interval, logger)

	server := gateway.NewServer(matches, chatService, hub, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		return scanner.Run(ctx)
	})
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
