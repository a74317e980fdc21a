package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mycare/backend/internal/metrics"
	"github.com/mycare/backend/internal/middleware"
	"github.com/mycare/backend/internal/service"
	"github.com/mycare/backend/internal/types"
)

// HealthLogHandler serves the authenticated user's health log collection.
type HealthLogHandler struct {
	healthService  *service.HealthRecordService
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewHealthLogHandler(healthService *service.HealthRecordService, profileService *service.ProfileService, authService *service.AuthService) *HealthLogHandler {
	return &HealthLogHandler{
		healthService:  healthService,
		profileService: profileService,
		authService:    authService,
	}
}

func (h *HealthLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/health-logs")
	logs.Use(middleware.AuthMiddleware(h.authService))
	{
		logs.GET("", h.List)
		logs.POST("", h.Append)
		logs.GET("/latest", h.Latest)
		logs.GET("/trend", h.Trend)
	}
}

func (h *HealthLogHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logs, err := h.healthService.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *HealthLogHandler) Append(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var m types.Measurement
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The BMI is fixed from the owner's height as of this append.
	user, err := h.profileService.Get(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	log, err := h.healthService.Append(c.Request.Context(), userID, user.HeightCm, &m)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	metrics.HealthLogsAppended.Inc()
	c.JSON(http.StatusCreated, log)
}

// Latest returns the most recent log plus the change against the one
// before it. Both are null for users with too little history.
func (h *HealthLogHandler) Latest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	latest, err := h.healthService.Latest(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	deltas, err := h.healthService.LatestDeltas(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"log": latest, "deltas": deltas})
}

func (h *HealthLogHandler) Trend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	field := c.Query("field")
	points, err := h.healthService.Trend(c.Request.Context(), userID, field)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"field": field, "points": points})
}
