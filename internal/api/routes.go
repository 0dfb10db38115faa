package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/datajud-bridge/internal/cache"
	"github.com/JustJay7/datajud-bridge/internal/consulta"
	"github.com/JustJay7/datajud-bridge/internal/database"
	"github.com/JustJay7/datajud-bridge/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, service *consulta.Service, store *database.Store, cache cache.Cache, logger *logger.Logger) {
	h := NewHandlers(service, store, cache, logger)

	router.GET("/", h.Home)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		datajud := api.Group("/datajud")
		{
			datajud.GET("/test", h.Test)
			datajud.GET("/stats", h.Stats)
			datajud.POST("/webhook/consulta-processo", h.ConsultaProcesso)
		}
	}
}

// Recovery turns panics into the webhook error envelope.
func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		logger.Error("Recovered from panic", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, InternalError(err))
	})
}
