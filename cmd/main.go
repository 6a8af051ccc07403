package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"confreg/cmd/buildCFG"
	"confreg/internal/api/api"
	"confreg/internal/cache"
	rabbitReader "confreg/internal/consumerWorker"
	"confreg/internal/filestore"
	"confreg/internal/metrics"
	"confreg/internal/rabbit"
	"confreg/internal/repo"
	"confreg/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "CONFREG"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)

	masterDSN, slaveDSNs, poolOptions, err := buildCFG.BuildDBConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build DB config")
	}
	db, err := dbpg.New(masterDSN, slaveDSNs, poolOptions)
	if err != nil {
		log.Fatal().Msgf("failed to connect to DB: %v", err)
	}
	defer db.Master.Close()
	if err := db.Master.Ping(); err != nil {
		log.Fatal().Msgf("DB ping failed: %v", err)
	}
	log.Info().Msg("Database connected successfully")

	repository, err := repo.NewRepository(db, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot get working directory")
	}
	migrationPath := filepath.Join(cwd, "migrations/postgres")
	if err := repository.MigrateUp(migrationPath); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	m := metrics.New(nil)
	uploads := buildCFG.BuildUploadsConfig(cfg)
	opts := []service.Option{service.WithMetrics(m)}

	redisCfg := buildCFG.BuildRedisConfig(cfg, &log)
	rdb, err := cache.New(context.Background(), redisCfg.Url, redisCfg.PoolSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
		opts = append(opts, service.WithStatsCache(cache.NewStatsCache(rdb, redisCfg.StatsTTL)))
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	var reader *rabbitReader.Reader
	if rabbitCfg.Url != "" {
		rmq, err := rabbit.Dial(rabbit.Config{
			URL:            rabbitCfg.Url,
			Exchange:       rabbitCfg.Exchange,
			Queue:          rabbitCfg.Queue,
			ReconcileDelay: rabbitCfg.ReconcileDelay,
		}, &log)
		if err != nil {
			log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()

		opts = append(opts, service.WithPublisher(rmq))
		reader = rabbitReader.NewReader(rmq, repository, &log, m)
		reader.Start(workerCtx)
	}

	serviceInstance := service.NewService(repository, filestore.NewLocal(uploads.Dir), &log, opts...)
	app := api.NewRouters(&api.Routers{
		Service: serviceInstance,
		Health:  repository,
		Metrics: m,
		Log:     &log,
	})

	srv := &http.Server{
		Addr:    ":" + serverCfg.Port,
		Handler: app,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Msgf("Error shutting down server: %v", err)
	}

	cancelWorkers()
	if reader != nil {
		reader.Stop()
	}

	log.Info().Msg("Shutdown complete")
}
