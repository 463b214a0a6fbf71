package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/metrics"
)

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), s.requestLogger())
	if s.app.Config.Server.GinMode == gin.DebugMode {
		router.Use(gin.Logger())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"modules": s.app.Catalog.Current().Len(),
		})
	})

	if s.app.Config.Metrics.Enabled && metrics.GetRegistry() != nil {
		handler := promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
		router.GET(s.app.Config.Metrics.Path, gin.WrapH(handler))
	}

	api := router.Group("/api", s.recordMetrics(), s.rateLimit())
	{
		api.GET("/modules", s.listModules)
		api.GET("/modules/:name", s.moduleTooltip)
		api.GET("/cores", s.listCores)
		api.GET("/bodies", s.listBodies)

		api.POST("/habitat/new", s.newHabitat)
		api.POST("/habitat/stats", s.habitatStats)
		api.POST("/habitat/place", s.placeModule)
		api.POST("/habitat/clear", s.clearCell)
		api.POST("/habitat/import", s.importHabitat)
	}

	router.GET("/ws", s.rateLimit(), s.serveWS)

	return router
}
