package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycare/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "good-token" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func authTestRouter(claims *types.TokenClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(&stubValidator{claims: claims}), func(c *gin.Context) {
		id, _ := c.Get(ContextUserIDKey)
		email, _ := c.Get(ContextEmailKey)
		c.JSON(http.StatusOK, gin.H{
			"user_id": id.(uuid.UUID).String(),
			"email":   email,
		})
	})
	return router
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	userID := uuid.New()
	router := authTestRouter(&types.TokenClaims{UserID: userID, Email: "priya@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "priya@example.com")
}

func TestAuthMiddlewareRejectsMalformedHeaders(t *testing.T) {
	router := authTestRouter(&types.TokenClaims{UserID: uuid.New()})

	for _, header := range []string{
		"",
		"Bearer",
		"Bearer ",
		"bearer good-token",
		"Basic Zm9vOmJhcg==",
		"good-token",
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := authTestRouter(&types.TokenClaims{UserID: uuid.New()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
