package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	mongoadapter "github.com/showtimehq/movie-booking/internal/adapters/mongo"
	"github.com/showtimehq/movie-booking/internal/adapters/rabbit"
	redisadapter "github.com/showtimehq/movie-booking/internal/adapters/redis"
	"github.com/showtimehq/movie-booking/internal/booking"
	"github.com/showtimehq/movie-booking/internal/catalog"
	"github.com/showtimehq/movie-booking/internal/config"
	httphandler "github.com/showtimehq/movie-booking/internal/http"
	"github.com/showtimehq/movie-booking/internal/idempotency"
	"github.com/showtimehq/movie-booking/internal/observability"
	"github.com/showtimehq/movie-booking/internal/rateLimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	store := mongoadapter.NewStore(mongoClient.Database(cfg.DatabaseName), logger)
	audit := mongoadapter.NewAuditLogger(mongoClient.Database(cfg.DatabaseName), logger)

	var rl *rateLimit.RateLimiter
	var idemp *idempotency.Idempotency
	if cfg.RedisAddr != "" {
		redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
		rl = rateLimit.NewRateLimiter(redisadapter.NewCache(redisClient), 100, time.Minute)
		idemp = idempotency.NewIdempotency(redisadapter.NewIdempotency(redisClient), time.Hour)
	}

	var events httphandler.EventPublisher
	if cfg.RabbitURL != "" {
		rabbitConn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbitConn.Close()
		rabbitPub, err := rabbit.NewPublisher(rabbitConn)
		if err != nil {
			log.Fatalf("failed to create publisher: %v", err)
		}
		events = rabbitPub
	}

	booker := booking.NewService(store.Showtimes, store.Bookings, logger)
	resolver := catalog.NewResolver(store.Movies, store.Theaters, store.Showtimes, logger)

	handlers := httphandler.NewHandlers(cfg, logger, store.Movies, store.Theaters, store.Showtimes, store.Bookings, booker, resolver, store, events, audit, idemp)

	r := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case <-gctx.Done():
			return gctx.Err()
		}
		logger.Info("Shutdown Server ...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("Server exiting")
}
