package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lifeline/internal/bloodrequest"
	bloodrequesthandler "lifeline/internal/bloodrequest/handler"
	bloodrequestmetrics "lifeline/internal/bloodrequest/metrics"
	"lifeline/internal/donation"
	donationhandler "lifeline/internal/donation/handler"
	donationmetrics "lifeline/internal/donation/metrics"
	"lifeline/internal/donor"
	donorhandler "lifeline/internal/donor/handler"
	"lifeline/internal/platform/config"
	"lifeline/internal/platform/httpserver"
	"lifeline/internal/platform/kafka"
	"lifeline/internal/platform/logger"
	"lifeline/internal/platform/postgres"
	redisplatform "lifeline/internal/platform/redis"
	"lifeline/internal/screening"
	screeninghandler "lifeline/internal/screening/handler"
	screeningmetrics "lifeline/internal/screening/metrics"
	"lifeline/internal/stock"
	stockhandler "lifeline/internal/stock/handler"
	httptransport "lifeline/internal/transport/http"
)

// main wires dependencies and runs the server plus background workers.
// Business logic lives in the internal feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Stores fall back to memory when no backend is configured, which keeps
	// local development dependency-free.
	var screeningStore screening.Store = screening.NewInMemoryStore()
	var donationStore donation.Store = donation.NewInMemoryStore()
	var donorStore donor.Store = donor.NewInMemoryStore()
	var stockStore stock.Store = stock.NewInMemoryStore()
	if db != nil {
		screeningStore = screening.NewPostgres(db)
		donationStore = donation.NewPostgres(db)
		donorStore = donor.NewPostgres(db)
		stockStore = stock.NewPostgres(db)
	}

	// Blood requests prefer Redis: key TTLs enforce the retention window
	// without a purge pass.
	var requestStore bloodrequest.Store = bloodrequest.NewInMemoryStore()
	if redisClient != nil {
		requestStore = bloodrequest.NewRedis(redisClient.Client, cfg.RequestRetention)
	} else if db != nil {
		requestStore = bloodrequest.NewPostgres(db)
	}

	requestOpts := []bloodrequest.Option{
		bloodrequest.WithLogger(log),
		bloodrequest.WithMetrics(bloodrequestmetrics.New()),
	}

	var producer *kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		defer producer.Close()

		ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := producer.EnsureTopic(ensureCtx, 3); err != nil {
			cancel()
			log.Error("kafka topic setup failed", "error", err)
			os.Exit(1)
		}
		cancel()
		requestOpts = append(requestOpts, bloodrequest.WithBroadcaster(bloodrequest.NewKafkaBroadcaster(producer)))
	}

	screeningService := screening.NewService(screeningStore,
		screening.WithLogger(log),
		screening.WithMetrics(screeningmetrics.New()),
	)
	donationService := donation.NewService(donationStore,
		donation.WithLogger(log),
		donation.WithMetrics(donationmetrics.New()),
	)
	donorService := donor.NewService(donorStore, donor.WithLogger(log))
	requestService := bloodrequest.NewService(requestStore, requestOpts...)
	stockService := stock.NewService(stockStore, stock.WithLogger(log))

	health := func(ctx context.Context) error {
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
		}
		if redisClient != nil {
			return redisClient.Health(ctx)
		}
		return nil
	}

	router := httptransport.NewRouter(log, health,
		screeninghandler.New(screeningService, log),
		donationhandler.New(donationService, log),
		donorhandler.New(donorService, log),
		bloodrequesthandler.New(requestService, log),
		stockhandler.New(stockService, log),
	)
	srv := httpserver.New(cfg.Addr, router)
	cleanup := bloodrequest.NewCleanupWorker(requestService, cfg.CleanupInterval, log)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		err := cleanup.Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
