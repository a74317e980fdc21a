package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mycare/backend/internal/models"
	"github.com/mycare/backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ContactMessage{}))
	return db
}

func registerRequest() *types.RegisterRequest {
	return &types.RegisterRequest{
		Name:     "Priya Singh",
		Email:    "priya@example.com",
		Password: "secret123",
		Age:      29,
		Height:   162,
		Gender:   "female",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newTestDB(t), "test-secret")

	token, user, err := svc.Register(registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "priya@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	loginToken, loginUser, err := svc.Login("priya@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
	assert.Equal(t, user.ID, loginUser.ID)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := NewAuthService(newTestDB(t), "test-secret")

	req := registerRequest()
	req.Email = "  Priya@Example.COM "
	_, user, err := svc.Register(req)
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", user.Email)

	_, _, err = svc.Login("PRIYA@example.com", "secret123")
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newTestDB(t), "test-secret")

	_, _, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, _, err = svc.Register(registerRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newTestDB(t), "test-secret")

	_, _, err := svc.Register(registerRequest())
	require.NoError(t, err)

	// Wrong password and unknown email yield the same error.
	_, _, err = svc.Login("priya@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(newTestDB(t), "test-secret")

	_, user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	token, err := svc.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")

	_, user, err := svc.Register(registerRequest())
	require.NoError(t, err)

	token, err := other.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newTestDB(t), "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
