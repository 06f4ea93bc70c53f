package api

import (
	"net/http/pprof"
	"strings"

	"github.com/gin-gonic/gin"
)

var runtimeProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// RegisterPprof mounts the runtime profiler under basePath, /debug/pprof by
// default. Only enabled through api.pprof since profiles expose internals.
func RegisterPprof(router gin.IRouter, basePath string) {
	basePath = strings.TrimSuffix(basePath, "/")
	if basePath == "" {
		basePath = "/debug/pprof"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	group := router.Group(basePath)
	group.GET("/", gin.WrapF(pprof.Index))
	group.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	group.GET("/profile", gin.WrapF(pprof.Profile))
	group.GET("/symbol", gin.WrapF(pprof.Symbol))
	group.POST("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/trace", gin.WrapF(pprof.Trace))
	for _, name := range runtimeProfiles {
		group.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}
}
