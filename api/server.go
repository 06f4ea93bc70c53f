package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"netflux/internal/config"
	"netflux/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. Traces are recorded for every
// request when handlers.Traces is set.
func NewRouter(cfg config.APIConfig, handlers *Handlers, log *logger.Logger) *gin.Engine {
	var modes ModeReader
	if handlers.Monitor != nil {
		modes = handlers.Monitor
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(TraceMiddleware(handlers.Traces, modes))
	router.Use(AuditMiddleware(log))
	RegisterRoutes(router, handlers)
	if cfg.Pprof {
		RegisterPprof(router, "")
	}
	return router
}

func StartServer(ctx context.Context, cfg config.APIConfig, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}
