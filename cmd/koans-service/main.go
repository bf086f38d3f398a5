package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/go-zen-koans/internal/bootstrap"
	"github.com/pribylovaa/go-zen-koans/internal/cache"
	"github.com/pribylovaa/go-zen-koans/internal/config"
	"github.com/pribylovaa/go-zen-koans/internal/service"
	"github.com/pribylovaa/go-zen-koans/internal/storage/breaker"
	httptransport "github.com/pribylovaa/go-zen-koans/internal/transport/http"
	"github.com/pribylovaa/go-zen-koans/internal/transport/http/handlers"
	"github.com/pribylovaa/go-zen-koans/pkg/interceptors"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := bootstrap.Logger(cfg.Env, os.Stdout)
	slog.SetDefault(log)
	log.Info("starting koans-service",
		slog.String("env", cfg.Env),
		slog.String("db_driver", cfg.DB.Driver),
		slog.String("orphan_policy", cfg.Threads.Policy().String()),
	)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	store, err := bootstrap.OpenStorage(rootCtx, cfg, !cfg.DB.SkipMigrate, log)
	if err != nil {
		log.Error("storage_open_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	svc := service.New(breaker.New(store, "storage", cfg.Breaker, log), *cfg)
	log.Info("service_initialized")

	var (
		koans       handlers.KoansService = svc
		redisClient *redis.Client
	)
	if cfg.Cache.Enabled() {
		cacheCtx, cacheCancel := context.WithTimeout(rootCtx, cfg.DB.ConnectTimeout)
		redisClient, err = cache.Open(cacheCtx, cfg.Cache.RedisURL)
		cacheCancel()

		if err != nil {
			log.Warn("cache_disabled", slog.String("err", err.Error()))
		} else {
			koans = cache.New(svc, redisClient, cfg.Cache.TTL, "koans:"+cfg.Threads.Policy().String()+":")
			log.Info("cache_enabled", slog.Duration("ttl", cfg.Cache.TTL))
		}
	}

	// HTTP: REST API + readiness/liveness/metrics
	var ready atomic.Bool
	httpAddr := cfg.HTTP.Addr()

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if ready.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.NewRouter(koans, httptransport.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Service,
		BasePath: cfg.HTTP.BasePath,
	}))

	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 2)
	go func() {
		log.Info("http_listen_start", slog.String("addr", httpAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()

	// gRPC: только health-check и reflection.
	grpc_prometheus.EnableHandlingTimeHistogram()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(log),
			interceptors.UnaryLoggingInterceptor(log),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamRecover(log),
			interceptors.StreamLoggingInterceptor(log),
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	if cfg.Env == bootstrap.EnvLocal || cfg.Env == bootstrap.EnvDev {
		reflection.Register(grpcServer)
	}

	grpcAddr := cfg.GRPC.Addr()
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("grpc_listen_failed",
			slog.String("addr", grpcAddr),
			slog.String("err", err.Error()),
		)
		_ = httpSrv.Shutdown(context.Background())
		rootCancel()
		closeRedis(redisClient)
		store.Close()
		os.Exit(1)
	}
	log.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	grpc_prometheus.Register(grpcServer)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	ready.Store(true)

	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
	}()

	exitCode := 0
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		log.Error("serve_failed", slog.String("err", err.Error()))
		exitCode = 1
	}

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	ready.Store(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = httpSrv.Close()
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		log.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	shutdownCancel()
	rootCancel()
	closeRedis(redisClient)
	store.Close()

	log.Info("service_stopped")
	os.Exit(exitCode)
}

func closeRedis(c *redis.Client) {
	if c != nil {
		_ = c.Close()
	}
}
