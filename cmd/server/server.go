package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"chapter-api/internal/config"
	"chapter-api/internal/infrastructure/crontab"
	"chapter-api/internal/infrastructure/logger"
	"chapter-api/internal/interfaces/httpserver"

	_ "net/http/pprof"
)

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
	metrics    *http.Server
}

func init() {
	log := logger.GetLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("load config")
		return
	}
	if _, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Warn().Err(err).Msg("invalid log settings, keeping defaults")
	}
}

func (application *Application) Start() {
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := http.ListenAndServe("0.0.0.0:6060", nil)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.metrics.ListenAndServe()
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.httpServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func newMetricsServer(cfg *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: mux,
	}
}

func main() {
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg == nil {
		log.Fatal().Msg("config not loaded")
	}

	application, err := CreateApplication(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}

	application.Start()
}
