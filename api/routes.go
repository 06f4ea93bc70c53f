package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/api/state", handlers.GetState)
	router.GET("/api/history", handlers.GetHistory)
	router.GET("/api/tooltip", handlers.GetTooltip)
	router.GET("/api/icon.png", handlers.GetIcon)
	router.GET("/api/mode", handlers.GetMode)
	router.PUT("/api/mode", handlers.SetMode)
	router.GET("/api/layout", handlers.GetLayout)
	router.GET("/api/stats", handlers.GetStats)
	router.GET("/api/alerts", handlers.GetAlerts)
	router.GET("/api/traces", handlers.GetTraces)
}
