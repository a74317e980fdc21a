package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mycare/backend/internal/knowledge"
	"github.com/mycare/backend/internal/metrics"
	"github.com/mycare/backend/internal/middleware"
	"github.com/mycare/backend/internal/service"
	"github.com/mycare/backend/internal/types"
)

// AdvisorHandler serves the AI guidance endpoints. Everything except the
// daily tip requires a session and burns upstream tokens, so those routes
// sit behind the advisor rate limiter.
type AdvisorHandler struct {
	advisorService *service.AdvisorService
	profileService *service.ProfileService
	healthService  *service.HealthRecordService
	authService    *service.AuthService
	rateLimiter    *middleware.RateLimiter
	logger         *zap.Logger
}

func NewAdvisorHandler(
	advisorService *service.AdvisorService,
	profileService *service.ProfileService,
	healthService *service.HealthRecordService,
	authService *service.AuthService,
	rateLimiter *middleware.RateLimiter,
	logger *zap.Logger,
) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
		profileService: profileService,
		healthService:  healthService,
		authService:    authService,
		rateLimiter:    rateLimiter,
		logger:         logger,
	}
}

func (h *AdvisorHandler) RegisterRoutes(router *gin.RouterGroup) {
	advisor := router.Group("/advisor")
	advisor.GET("/tip", h.DailyTip)

	authed := advisor.Group("")
	authed.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		authed.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		authed.GET("/suggestions", h.HealthSuggestions)
		authed.POST("/first-aid", h.GenerateFirstAid)
		authed.POST("/chat", h.Chat)
		authed.GET("/locations", h.LocationSuggestions)
		authed.POST("/nearby", h.NearbyFacilities)
	}
}

// DailyTip is public: it is shown on the landing page before login.
func (h *AdvisorHandler) DailyTip(c *gin.Context) {
	tip := h.advisorService.DailyTip(c.Request.Context())
	metrics.AdvisorRequests.WithLabelValues("tip", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}

func (h *AdvisorHandler) HealthSuggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	latest, err := h.healthService.Latest(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	suggestions := h.advisorService.HealthSuggestions(c.Request.Context(), user, latest)
	metrics.AdvisorRequests.WithLabelValues("suggestions", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

type generateFirstAidRequest struct {
	Topic string `json:"topic" binding:"required"`
	Lang  string `json:"lang"`
}

// GenerateFirstAid produces guidance for topics outside the static
// catalog. The response reuses the catalog entry shape with a sentinel id
// so clients render it alongside real scenarios. An upstream miss
// degrades to a null scenario, never to a 5xx.
func (h *AdvisorHandler) GenerateFirstAid(c *gin.Context) {
	var req generateFirstAidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lang := knowledge.ParseLanguage(req.Lang)

	scenario, err := h.advisorService.GenerateFirstAid(c.Request.Context(), req.Topic, lang)
	if err != nil {
		h.logger.Warn("first aid generation failed", zap.String("topic", req.Topic), zap.Error(err))
		metrics.AdvisorRequests.WithLabelValues("first_aid", "fallback").Inc()
		c.JSON(http.StatusOK, gin.H{"scenario": nil})
		return
	}

	metrics.AdvisorRequests.WithLabelValues("first_aid", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"scenario": scenarioView{
		ID:             "ai-generated",
		Title:          scenario.Title,
		Category:       "AI Assistant",
		Icon:           "🤖",
		Steps:          scenario.Steps,
		Dos:            scenario.Dos,
		Donts:          scenario.Donts,
		EmergencyLevel: knowledge.LevelMedium,
	}})
}

func (h *AdvisorHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.advisorService.Chat(c.Request.Context(), req.Message, req.History)
	metrics.AdvisorRequests.WithLabelValues("chat", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *AdvisorHandler) LocationSuggestions(c *gin.Context) {
	suggestions := h.advisorService.LocationSuggestions(c.Request.Context(), c.Query("input"))
	metrics.AdvisorRequests.WithLabelValues("locations", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *AdvisorHandler) NearbyFacilities(c *gin.Context) {
	var req types.NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.advisorService.NearbyFacilities(c.Request.Context(), &req)
	metrics.AdvisorRequests.WithLabelValues("nearby", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"result": result})
}
