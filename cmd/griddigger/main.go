package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/cache"
	"github.com/griddigger/griddigger/internal/catalog"
	"github.com/griddigger/griddigger/internal/config"
	"github.com/griddigger/griddigger/internal/format"
	"github.com/griddigger/griddigger/internal/graphql"
	logpkg "github.com/griddigger/griddigger/internal/logger"
	"github.com/griddigger/griddigger/internal/metrics"
	"github.com/griddigger/griddigger/internal/query"
	profilerepo "github.com/griddigger/griddigger/internal/repository/profile"
	"github.com/griddigger/griddigger/internal/repository/stats"
	chiTransport "github.com/griddigger/griddigger/internal/transport/chi"
	filtersuc "github.com/griddigger/griddigger/internal/usecase/filters"
	profileuc "github.com/griddigger/griddigger/internal/usecase/profile"
	searchuc "github.com/griddigger/griddigger/internal/usecase/search"
	"github.com/griddigger/griddigger/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting griddigger API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("graphql_endpoint", cfg.GraphQL.Endpoint),
	)

	// Register query metrics explicitly (no init())
	metrics.RegisterQueryMetrics()

	// Filter catalog is embedded; a malformed catalog is a build defect.
	cat := catalog.MustLoad()

	// Query cache backend
	var backend cache.Cache
	switch cfg.Cache.Driver {
	case "redis":
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Addrs:     cfg.Cache.Addrs,
			Password:  cfg.Cache.Password,
			KeyPrefix: cfg.Cache.KeyPrefix,
			Logger:    logger,
		})
		if err != nil {
			logger.Fatal("Failed to connect cache redis", zap.Error(err))
		}
		defer redisCache.Close()
		backend = redisCache
	case "memory":
		backend = cache.NewMemory()
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}
	queryCache := cache.NewManager(backend, time.Duration(cfg.Cache.TTLSec)*time.Second, cfg.Cache.Enabled)

	// Per-user stats store (optional)
	var usage *stats.Store
	if cfg.Stats.Enabled {
		usage, err = stats.NewStore(stats.Config{
			Addrs:     cfg.Stats.Addrs,
			Password:  cfg.Stats.Password,
			KeyPrefix: cfg.Stats.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to connect stats redis", zap.Error(err))
		}
		defer usage.Close()
		logger.Info("Connected to stats store", zap.Strings("addrs", cfg.Stats.Addrs))
	}

	// Upstream GraphQL client and query compiler
	client := graphql.NewClient(graphql.Config{
		Endpoint:   cfg.GraphQL.Endpoint,
		Token:      cfg.GraphQL.Token,
		Timeout:    time.Duration(cfg.GraphQL.TimeoutSec) * time.Second,
		MaxRetries: cfg.GraphQL.MaxRetries,
		PoolSize:   cfg.GraphQL.PoolSize,
		Logger:     logger,
	})
	compiler := query.NewCompiler(cat, logger)

	// Repository and use case services
	profiles := profilerepo.New(client, compiler, cat, queryCache, logger)

	// *stats.Store is passed through an interface; a typed nil pointer
	// wrapped in a non-nil interface would dodge the nil checks.
	searchSvc := newSearchService(profiles, usage, logger)
	profileSvc := newProfileService(profiles, usage, logger)
	filtersSvc := filtersuc.New(cat, profiles, logger)

	server := chiTransport.NewServer(searchSvc, profileSvc, filtersSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newSearchService(profiles *profilerepo.Repo, usage *stats.Store, logger *zap.Logger) *searchuc.Service {
	if usage == nil {
		return searchuc.New(profiles, nil, logger)
	}
	return searchuc.New(profiles, usage, logger)
}

func newProfileService(profiles *profilerepo.Repo, usage *stats.Store, logger *zap.Logger) *profileuc.Service {
	registry := format.NewRegistry()
	if usage == nil {
		return profileuc.New(profiles, registry, nil, logger)
	}
	return profileuc.New(profiles, registry, usage, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
