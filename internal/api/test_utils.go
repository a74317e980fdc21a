package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mycare/backend/internal/knowledge"
	"github.com/mycare/backend/internal/logger"
	"github.com/mycare/backend/internal/models"
	"github.com/mycare/backend/internal/service"
	"github.com/mycare/backend/internal/storage"
)

// setupTestRouter builds a full route tree on sqlite and an in-memory KV
// store. advisorURL points the advisor at a stub upstream; pass an
// unreachable URL to exercise the fallbacks.
func setupTestRouter(t *testing.T, advisorURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ContactMessage{}))

	catalog, err := knowledge.NewStore()
	require.NoError(t, err)

	router := gin.New()
	SetupAPI(router, Options{
		DB:        db,
		KV:        storage.NewMemoryStore(),
		Catalog:   catalog,
		JWTSecret: "test-secret",
		Advisor:   service.NewAdvisorService("test-key", advisorURL, logger.NewNop()),
		Logger:    logger.NewNop(),
	})
	return router
}

// doJSON performs one request against the router and decodes the JSON
// response into out when out is non-nil.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

// registerTestUser creates an account and returns its session token.
func registerTestUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
		"age":      30,
		"height":   175,
		"gender":   "other",
	}, &resp)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
