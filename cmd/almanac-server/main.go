package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/internal/api"
	"github.com/celestialworks/almanac/internal/geocode"
	"github.com/celestialworks/almanac/internal/logging"
	"github.com/celestialworks/almanac/internal/observability"
	"github.com/celestialworks/almanac/internal/report"
	"github.com/celestialworks/almanac/internal/storage"
	"github.com/celestialworks/almanac/internal/storage/memory"
	"github.com/celestialworks/almanac/internal/storage/sqlite"
)

func main() {
	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := api.ConfigFromEnv()
	if err != nil {
		log.Error(ctx, "failed to load configuration", logging.String("error", err.Error()))
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "TCP address the almanac HTTP API listens on")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "HTTP address for Prometheus /metrics")
	storePath := flag.String("store", cfg.StorePath, "Path to the SQLite store (empty keeps profiles in memory)")
	tablePath := flag.String("ephemeris", cfg.EphemerisTable, "Path to a JSON ephemeris table enabling the precise backend")
	geocodeURL := flag.String("geocode-url", cfg.GeocodeBaseURL, "Base URL of the geocoding service")
	flag.Parse()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	store, err := openStore(*storePath)
	if err != nil {
		log.Error(ctx, "failed to open store", logging.String("path", *storePath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	engine, err := buildEngine(*tablePath)
	if err != nil {
		log.Error(ctx, "failed to load ephemeris table", logging.String("path", *tablePath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	collector.SetBackendAvailable(engine.Mode() == ephemeris.ModePrecise)
	log.Info(ctx, "ephemeris engine ready", logging.String("mode", engine.Mode()))

	if profiles, err := store.ListProfiles(ctx); err == nil {
		collector.SetProfilesStored(len(profiles))
	}

	generator := report.New(engine, log, report.WithRecorder(collector))

	setGinMode(cfg.GinMode, log)
	router, err := api.NewRouter(api.Deps{
		Log:       log,
		Store:     store,
		Generator: generator,
		Engine:    engine,
		Geocoder:  geocode.New(geocode.Config{BaseURL: *geocodeURL}),
		Collector: collector,
	})
	if err != nil {
		log.Error(ctx, "failed to build router", logging.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: router,
	}

	log.Info(ctx, "starting almanac HTTP server", logging.String("addr", *addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server exited", logging.String("error", err.Error()))
		}
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-stopCtx.Done()

	log.Info(ctx, "shutting down almanac server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "HTTP shutdown incomplete", logging.String("error", err.Error()))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	if err := store.Close(); err != nil {
		log.Warn(ctx, "closing store", logging.String("error", err.Error()))
	}
}

func openStore(path string) (storage.Store, error) {
	if path == "" {
		return memory.New(), nil
	}
	return sqlite.Open(path)
}

func buildEngine(tablePath string) (*ephemeris.Engine, error) {
	if tablePath == "" {
		return ephemeris.New(), nil
	}
	backend, err := ephemeris.LoadTableFile(tablePath)
	if err != nil {
		return nil, err
	}
	return ephemeris.New(ephemeris.WithBackend(backend)), nil
}

func setGinMode(mode string, log logging.Logger) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		log.Warn(context.Background(), "unknown gin mode, using release", logging.String("mode", mode))
		gin.SetMode(gin.ReleaseMode)
	}
}

func serveMetrics(addr string, collector *observability.Collector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
