package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-key"

func newTestAuthMiddleware() (*AuthMiddleware, *util.JWTManager) {
	jwtManager := util.NewJWTManager(testSecret, time.Hour)
	return NewAuthMiddleware(jwtManager), jwtManager
}

// bearer выпускает токен для тестовых запросов
func bearer(t *testing.T, jwtManager *util.JWTManager, userID, role string) string {
	t.Helper()
	token, err := jwtManager.GenerateToken(userID, "user@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

// withUser эмулирует прошедший Authenticate запрос
func withUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// ==================== Authenticate Tests ====================

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	middleware, jwtManager := newTestAuthMiddleware()

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
		assert.Equal(t, "user-1", c.GetString("user_id"))
		assert.Equal(t, "user@example.com", c.GetString("email"))
		assert.Equal(t, entity.RoleOwner, c.GetString("role"))
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearer(t, jwtManager, "user-1", entity.RoleOwner))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Authenticate_Rejects(t *testing.T) {
	middleware, _ := newTestAuthMiddleware()
	expired := util.NewJWTManager(testSecret, -time.Minute)
	expiredToken, err := expired.GenerateToken("user-1", "user@example.com", entity.RoleUser)
	require.NoError(t, err)
	foreign := util.NewJWTManager("other-secret", time.Hour)
	foreignToken, err := foreign.GenerateToken("user-1", "user@example.com", entity.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Authorization header required"},
		{"wrong scheme", "Basic abc", "Invalid authorization header format"},
		{"no token", "Bearer", "Invalid authorization header format"},
		{"foreign signature", "Bearer " + foreignToken, "Invalid token"},
		{"expired", "Bearer " + expiredToken, "Token has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
				t.Fatal("handler must not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

// ==================== RequireRole Tests ====================

func TestAuthMiddleware_RequireRole(t *testing.T) {
	middleware, _ := newTestAuthMiddleware()

	tests := []struct {
		name     string
		role     string
		expected int
	}{
		{"admin allowed", entity.RoleAdmin, http.StatusOK},
		{"owner forbidden", entity.RoleOwner, http.StatusForbidden},
		{"no role", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/admin",
				func(c *gin.Context) {
					if tt.role != "" {
						c.Set("role", tt.role)
					}
					c.Next()
				},
				middleware.RequireRole(entity.RoleAdmin),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
