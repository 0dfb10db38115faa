package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/datajud-bridge/internal/cache"
	"github.com/JustJay7/datajud-bridge/internal/consulta"
	"github.com/JustJay7/datajud-bridge/internal/database"
	"github.com/JustJay7/datajud-bridge/pkg/logger"
)

const (
	serviceMessage = "Serviço de integração DataJud-BotConversa funcionando"

	WebhookPath = "/api/datajud/webhook/consulta-processo"
	TestPath    = "/api/datajud/test"
	StatsPath   = "/api/datajud/stats"
	HealthPath  = "/api/health"
)

// WebhookRequest accepts both the BotConversa shape {"message":{"text":...}}
// and a flat {"text":...}.
type WebhookRequest struct {
	Message *struct {
		Text string `json:"text"`
	} `json:"message"`
	Text string `json:"text"`
}

// MessageText returns message.text when set, otherwise text.
func (r *WebhookRequest) MessageText() string {
	if r.Message != nil && r.Message.Text != "" {
		return r.Message.Text
	}
	return r.Text
}

// WebhookResponse is the envelope returned to the chat platform.
type WebhookResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ProcessoNumero string `json:"processo_numero,omitempty"`
	Tribunal       string `json:"tribunal,omitempty"`
}

// InternalError builds the envelope for unexpected failures.
func InternalError(err interface{}) WebhookResponse {
	return WebhookResponse{
		Success: false,
		Message: fmt.Sprintf("❌ Erro interno do servidor: %v", err),
	}
}

// Handlers holds all HTTP handlers
type Handlers struct {
	service *consulta.Service
	store   *database.Store
	cache   cache.Cache
	logger  *logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(service *consulta.Service, store *database.Store, cache cache.Cache, logger *logger.Logger) *Handlers {
	return &Handlers{
		service: service,
		store:   store,
		cache:   cache,
		logger:  logger,
	}
}

// Home describes the service
func (h *Handlers) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": serviceMessage,
		"endpoints": []string{
			WebhookPath,
			TestPath,
		},
	})
}

// Test is a liveness probe for the chat platform
func (h *Handlers) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   serviceMessage,
		"timestamp": time.Now().Format("2006-01-02T15:04:05.000000"),
	})
}

// ConsultaProcesso handles the chat webhook
func (h *Handlers) ConsultaProcesso(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid webhook payload", "error", err)
		c.JSON(http.StatusInternalServerError, InternalError(err))
		return
	}

	out := h.service.Lookup(c.Request.Context(), req.MessageText(), c.ClientIP())

	c.JSON(http.StatusOK, WebhookResponse{
		Success:        out.Success,
		Message:        out.Message,
		ProcessoNumero: out.ProcessNumber,
		Tribunal:       out.Tribunal,
	})
}

// Stats returns outcome counts and cache statistics
func (h *Handlers) Stats(c *gin.Context) {
	summary, err := h.store.Summarize(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to summarize queries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"queries": summary,
			"cache":   h.cache.Stats(),
		},
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": h.store.Ping(c.Request.Context()),
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	})
}
