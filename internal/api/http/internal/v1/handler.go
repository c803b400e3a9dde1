package v1

import (
	"net/http"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/service"
	"github.com/taskhive/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("/v1")
	{
		v1.GET("/health-check", h.healthCheck)

		h.initAuthRoutes(v1)
		h.initTaskRoutes(v1)
		h.initProfileRoutes(v1)
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response
// @Router /api/v1/health-check [get]
func (h *Handler) healthCheck(c *gin.Context) {
	successResponse(c, http.StatusOK, "service is healthy", nil)
}
