package delivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthHandler answers GET /health from the same checker the gRPC
// health service uses.
type HealthHandler struct {
	check func(ctx context.Context) bool
	log   *logrus.Logger
}

func NewHealthHandler(check func(ctx context.Context) bool, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{check: check, log: logger}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	if !h.check(c.Request.Context()) {
		ErrorResponse(c, http.StatusServiceUnavailable, "Data source unavailable")
		return
	}
	SuccessResponse(c, http.StatusOK, "OK", nil)
}
