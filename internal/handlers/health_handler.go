package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/session"
	"careconnect_web/pkg/apperrors"
)

type HealthHandler struct {
	sessions  *session.Manager
	startedAt time.Time
}

func NewHealthHandler(sessions *session.Manager) *HealthHandler {
	return &HealthHandler{sessions: sessions, startedAt: time.Now()}
}

func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/healthz", h.Health)
}

// Health reports ok while the session store answers.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.sessions.Ping(c.Request.Context()); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	})
}
