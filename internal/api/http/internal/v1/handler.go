package v1

import (
	"github.com/communityhub/backend/internal/config"
	"github.com/communityhub/backend/internal/service"
	"github.com/communityhub/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Community Hub API
// @version 1.0
// @description Events, courses and competitions catalog with registration and checkout

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initCatalogRoutes(v1)
	h.initCheckoutRoutes(v1)
	h.initCommunityRoutes(v1)
	h.initAdminRoutes(v1)
}
