package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freshmarket/internal/config"
	"freshmarket/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret string, userID int64, role string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func runWithAuth(cfg config.Config, authz string, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user_id": c.Get(middleware.CtxUserIDKey),
			"role":    c.Get(middleware.CtxUserRoleKey),
		})
	}

	mws := append([]echo.MiddlewareFunc{middleware.AuthJWT(cfg)}, extra...)
	e.GET("/protected", handler, mws...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	token := signToken(t, "test_secret", 7, "customer")

	rec := runWithAuth(cfg, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":7`)
	assert.Contains(t, rec.Body.String(), `"role":"customer"`)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	rec := runWithAuth(cfg, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	token := signToken(t, "other_secret", 7, "customer")

	rec := runWithAuth(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	claims := jwt.MapClaims{
		"sub":  int64(7),
		"role": "customer",
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	assert.NoError(t, err)

	rec := runWithAuth(cfg, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}
	token := signToken(t, "test_secret", 7, "customer")

	rec := runWithAuth(cfg, "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// Role guard
// =====================

func TestStaffRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	//customerは403
	rec := runWithAuth(cfg, "Bearer "+signToken(t, "test_secret", 7, "customer"), middleware.StaffRoleGuard())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	//staffは通る
	rec = runWithAuth(cfg, "Bearer "+signToken(t, "test_secret", 5, "staff"), middleware.StaffRoleGuard())
	assert.Equal(t, http.StatusOK, rec.Code)

	//adminも通る
	rec = runWithAuth(cfg, "Bearer "+signToken(t, "test_secret", 1, "admin"), middleware.StaffRoleGuard())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: "test_secret"}

	//staffでも403
	rec := runWithAuth(cfg, "Bearer "+signToken(t, "test_secret", 5, "staff"), middleware.AdminRoleGuard())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runWithAuth(cfg, "Bearer "+signToken(t, "test_secret", 1, "admin"), middleware.AdminRoleGuard())
	assert.Equal(t, http.StatusOK, rec.Code)
}
