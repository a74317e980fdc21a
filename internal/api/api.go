package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mycare/backend/internal/knowledge"
	"github.com/mycare/backend/internal/middleware"
	"github.com/mycare/backend/internal/service"
	"github.com/mycare/backend/internal/storage"
)

// Options carries everything SetupAPI needs to wire the route tree.
type Options struct {
	DB          *gorm.DB
	KV          storage.Store
	Catalog     *knowledge.Store
	JWTSecret   string
	Advisor     *service.AdvisorService
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// SetupAPI registers all /api/v1 routes on the router.
func SetupAPI(router *gin.Engine, opts Options) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(opts.DB, opts.JWTSecret)
		profileService := service.NewProfileService(opts.DB)
		healthService := service.NewHealthRecordService(opts.KV)
		contactService := service.NewContactService(opts.KV)
		messageService := service.NewMessageService(opts.DB)

		NewAuthHandler(authService).RegisterRoutes(v1)
		NewProfileHandler(profileService, authService).RegisterRoutes(v1)
		NewHealthLogHandler(healthService, profileService, authService).RegisterRoutes(v1)
		NewContactHandler(contactService, authService).RegisterRoutes(v1)
		NewFirstAidHandler(opts.Catalog).RegisterRoutes(v1)
		NewContactFormHandler(messageService).RegisterRoutes(v1)
		NewAdvisorHandler(opts.Advisor, profileService, healthService, authService, opts.RateLimiter, opts.Logger).RegisterRoutes(v1)
	}
}
