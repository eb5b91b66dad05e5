package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/config"
	"ktirio-backend/internal/middleware"
)

func authRouter(cfg *config.Config, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", handler)
	return router
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
	router := authRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
	router := authRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
	router := authRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "right-secret"}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
	})
	tokenString, _ := token.SignedString([]byte("wrong-secret"))

	router := authRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := &config.Config{
		SupabaseJWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough",
	}
	userID := uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
	})
	tokenString, _ := token.SignedString([]byte(cfg.SupabaseJWTSecret))

	router := authRouter(cfg, func(c *gin.Context) {
		got, exists := c.Get(middleware.UserIDKey)
		assert.True(t, exists)
		assert.Equal(t, userID, got)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingSubClaim(t *testing.T) {
	cfg := &config.Config{SupabaseJWTSecret: "test-secret"}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "authenticated",
	})
	tokenString, _ := token.SignedString([]byte(cfg.SupabaseJWTSecret))

	router := authRouter(cfg, okHandler)

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
