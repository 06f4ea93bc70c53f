package api

import (
	"net/http"
	"strings"
	"time"

	"netflux/internal/logger"
	"netflux/internal/observability"
	"netflux/pkg/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditMiddleware logs every request that changes state.
func AuditMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if log == nil {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		log.Info("audit", map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
			"client": c.ClientIP(),
		})
	}
}

// ModeReader reports the current view mode.
type ModeReader interface {
	Mode() view.Mode
}

// TraceMiddleware records each request with the response size, its content
// encoding and the view mode after the handler ran. modes may be nil.
func TraceMiddleware(store *observability.Store[observability.Trace], modes ModeReader) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		start := time.Now()
		traceID := strings.TrimSpace(c.GetHeader("X-Trace-Id"))
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set("trace_id", traceID)
		c.Header("X-Trace-Id", traceID)
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		trace := observability.Trace{
			ID:         traceID,
			Method:     c.Request.Method,
			Path:       path,
			Status:     c.Writer.Status(),
			Encoding:   c.Writer.Header().Get("Content-Encoding"),
			Bytes:      max(c.Writer.Size(), 0),
			DurationMs: time.Since(start).Milliseconds(),
			Timestamp:  time.Now().Unix(),
			ClientIP:   c.ClientIP(),
		}
		if modes != nil {
			trace.Mode = modes.Mode().String()
		}
		store.Add(trace)
	}
}
