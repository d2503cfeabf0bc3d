package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"loadavg-service/internal/config"
	"loadavg-service/internal/domain"
	"loadavg-service/internal/endpoints"
	"loadavg-service/internal/util"
)

const RequestIDHeader = "X-Request-Id"

func NewRouter(sampler domain.Sampler, webSlogger *util.ServiceLogger) *mux.Router {
	r := mux.NewRouter()

	addRoutes(r, sampler, webSlogger)

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(webSlogger))
	r.Use(recoveryMiddleware(webSlogger))

	return r
}

func addRoutes(r *mux.Router, sampler domain.Sampler, webSlogger *util.ServiceLogger) {

	loadAvgHandler := &endpoints.LoadAvg{}
	loadAvgHandler.Init(sampler, webSlogger)

	r.HandleFunc("/loadavg", loadAvgHandler.GetLoadAvgHandler).Methods(http.MethodGet)
}

func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context, cfg config.Config, sampler domain.Sampler, webSlogger *util.ServiceLogger) error {
	server := NewServer(cfg, NewRouter(sampler, webSlogger))
	return Serve(ctx, server, cfg.ShutdownTimeout, webSlogger)
}

func Serve(ctx context.Context, server *http.Server, shutdownTimeout time.Duration, webSlogger *util.ServiceLogger) error {
	serveErr := make(chan error, 1)
	go func() {
		webSlogger.LogEvent(util.LOG_LEVEL_INFO, "Listening on", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	webSlogger.LogEvent(util.LOG_LEVEL_INFO, "Shutting down server...")

	if err := gracefulShutdown(server, shutdownTimeout); err != nil {
		webSlogger.LogEvent(util.LOG_LEVEL_ERROR, "Server stopped with error:", err)
		return err
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	webSlogger.LogEvent(util.LOG_LEVEL_INFO, "Server stopped gracefully.")
	return nil
}

func gracefulShutdown(server *http.Server, maximumTime time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), maximumTime)
	defer cancel()

	return server.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(logger *util.ServiceLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.LogFields(util.LOG_LEVEL_INFO, "Request",
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", r.Header.Get(RequestIDHeader)),
			)
		})
	}
}

// recoveryMiddleware answers 500 for a panicking handler.
func recoveryMiddleware(logger *util.ServiceLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if panicErr := recover(); panicErr != nil {
					if panicErr == http.ErrAbortHandler {
						panic(panicErr)
					}
					logger.LogFields(util.LOG_LEVEL_ERROR, "Panic while serving request",
						zap.Any("panic", panicErr),
						zap.ByteString("stack", debug.Stack()),
						zap.String("request_id", r.Header.Get(RequestIDHeader)),
					)
					endpoints.APIResponse{}.WriteErrorResponseWithStatusCode(w, endpoints.ErrInternal, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
