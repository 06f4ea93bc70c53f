package api

import (
	"net/http"
	"strings"
	"testing"

	"netflux/internal/observability"
	"netflux/pkg/view"

	"github.com/gin-gonic/gin"
)

func TestTraceRecordsModeAfterSwitch(t *testing.T) {
	h := newTestHandlers(t)
	router := setupRouter(h)

	w := do(router, http.MethodPut, "/api/mode", strings.NewReader(`{"mode":"download"}`),
		map[string]string{"Content-Type": "application/json", "X-Trace-Id": "switch-1"})
	if w.Code != http.StatusOK || w.Header().Get("X-Trace-Id") != "switch-1" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Header().Get("X-Trace-Id"))
	}

	traces := h.Traces.List()
	if len(traces) != 1 {
		t.Fatalf("expected one trace, got %+v", traces)
	}
	tr := traces[0]
	if tr.ID != "switch-1" || tr.Path != "/api/mode" || tr.Mode != view.ModeDownloadOnly.String() {
		t.Fatalf("unexpected trace %+v", tr)
	}
	if tr.Bytes != w.Body.Len() {
		t.Fatalf("expected %d bytes traced, got %d", w.Body.Len(), tr.Bytes)
	}
}

func TestTraceRecordsEncoding(t *testing.T) {
	h := newTestHandlers(t)
	router := setupRouter(h)

	do(router, http.MethodGet, "/api/history", nil, nil)
	w := do(router, http.MethodGet, "/api/history", nil, map[string]string{"Accept-Encoding": "br"})

	traces := h.Traces.List()
	if len(traces) != 2 {
		t.Fatalf("expected two traces, got %+v", traces)
	}
	if traces[0].Encoding != "" || traces[1].Encoding != "br" {
		t.Fatalf("expected plain then brotli, got %q %q", traces[0].Encoding, traces[1].Encoding)
	}
	if traces[1].Bytes != w.Body.Len() || traces[1].Bytes == 0 {
		t.Fatalf("expected compressed size %d, got %d", w.Body.Len(), traces[1].Bytes)
	}
	if traces[1].Mode != view.ModeAll.String() {
		t.Fatalf("expected mode all, got %q", traces[1].Mode)
	}
}

func TestTraceWithoutModeReader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := observability.NewTraceStore(4)
	router := gin.New()
	router.Use(TraceMiddleware(store, nil))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do(router, http.MethodGet, "/ping", nil, nil)
	traces := store.List()
	if len(traces) != 1 || traces[0].Mode != "" || traces[0].Bytes != 0 || traces[0].ID == "" {
		t.Fatalf("unexpected trace %+v", traces)
	}
}
