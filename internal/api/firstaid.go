package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mycare/backend/internal/knowledge"
	"github.com/mycare/backend/internal/metrics"
)

// FirstAidHandler serves the static first-aid catalog. The endpoints are
// public: emergency guidance must not sit behind a login.
type FirstAidHandler struct {
	catalog *knowledge.Store
}

func NewFirstAidHandler(catalog *knowledge.Store) *FirstAidHandler {
	return &FirstAidHandler{catalog: catalog}
}

func (h *FirstAidHandler) RegisterRoutes(router *gin.RouterGroup) {
	firstAid := router.Group("/first-aid")
	{
		firstAid.GET("", h.List)
		firstAid.GET("/:id", h.Get)
	}
}

// scenarioView is one catalog entry localized for the requested language.
type scenarioView struct {
	ID             string                   `json:"id"`
	Title          string                   `json:"title"`
	Category       string                   `json:"category"`
	Icon           string                   `json:"icon"`
	Steps          []string                 `json:"steps"`
	Dos            []string                 `json:"dos"`
	Donts          []string                 `json:"donts"`
	EmergencyLevel knowledge.EmergencyLevel `json:"emergencyLevel"`
}

func localize(s *knowledge.Scenario, lang knowledge.Language) scenarioView {
	return scenarioView{
		ID:             s.ID,
		Title:          s.LocalizedTitle(lang),
		Category:       s.LocalizedCategory(lang),
		Icon:           s.Icon,
		Steps:          s.LocalizedSteps(lang),
		Dos:            s.LocalizedDos(lang),
		Donts:          s.LocalizedDonts(lang),
		EmergencyLevel: s.EmergencyLevel,
	}
}

// List returns the catalog, filtered by the q parameter when present.
// Filtering matches only content in the requested language; display of
// the matched entries still falls back to English where a localization
// is missing.
func (h *FirstAidHandler) List(c *gin.Context) {
	lang := knowledge.ParseLanguage(c.Query("lang"))
	query := c.Query("q")

	scenarios := knowledge.Filter(h.catalog.GetAll(), query, lang)
	if query != "" {
		metrics.ScenarioSearches.WithLabelValues(string(lang)).Inc()
	}

	views := make([]scenarioView, 0, len(scenarios))
	for i := range scenarios {
		views = append(views, localize(&scenarios[i], lang))
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": views, "language": lang})
}

func (h *FirstAidHandler) Get(c *gin.Context) {
	lang := knowledge.ParseLanguage(c.Query("lang"))

	scenario, err := h.catalog.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
		return
	}
	c.JSON(http.StatusOK, localize(scenario, lang))
}
