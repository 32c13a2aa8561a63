package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

func setupMiddlewareTest() (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router, NewAuthMiddleware(testJWTSecret)
}

func generateTestToken(t *testing.T, userID uint, email, role string, expiry time.Duration) string {
	tokens, err := util.GenerateTokenPair(userID, email, role, testJWTSecret, expiry, 7*24*time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["error"].(string)
	return code
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	valid := generateTestToken(t, 1, "camila@example.com", "user", 15*time.Minute)
	expired := generateTestToken(t, 1, "camila@example.com", "user", time.Nanosecond)
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "Valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "Lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "No header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_UNAUTHORIZED"},
		{name: "Wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized, wantCode: "AUTH_TOKEN_INVALID"},
		{name: "Garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_TOKEN_INVALID"},
		{name: "Expired token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantCode: "AUTH_TOKEN_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, auth := setupMiddlewareTest()
			router.GET("/test", auth.Authenticate(), func(c *gin.Context) {
				userID, _ := GetUserID(c)
				role, _ := GetUserRole(c)
				token, _ := GetToken(c)
				c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role, "has_token": token != ""})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, w))
			} else {
				assert.JSONEq(t, `{"user_id":1,"role":"user","has_token":true}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_OptionalAuthenticate(t *testing.T) {
	router, auth := setupMiddlewareTest()
	router.GET("/test", auth.OptionalAuthenticate(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "authenticated": ok})
	})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "Guest", header: "", want: `{"user_id":0,"authenticated":false}`},
		{name: "Invalid token is ignored", header: "Bearer nope", want: `{"user_id":0,"authenticated":false}`},
		{name: "Valid token", header: "Bearer " + generateTestToken(t, 42, "pedro@example.com", "user", time.Minute), want: `{"user_id":42,"authenticated":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		allowed    []model.UserRole
		wantStatus int
	}{
		{name: "Admin on admin route", role: "admin", allowed: []model.UserRole{model.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "Customer on admin route", role: "user", allowed: []model.UserRole{model.RoleAdmin}, wantStatus: http.StatusForbidden},
		{name: "Either role", role: "user", allowed: []model.UserRole{model.RoleAdmin, model.RoleUser}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, auth := setupMiddlewareTest()
			router.GET("/admin", auth.Authenticate(), auth.RequireRole(tt.allowed...), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+generateTestToken(t, 1, "x@example.com", tt.role, time.Minute))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthMiddleware_RequireRoleWithoutAuthentication(t *testing.T) {
	router, auth := setupMiddlewareTest()
	router.GET("/admin", auth.RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTHZ_ROLE_NOT_FOUND", errorCode(t, w))
}

func TestContextGetters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)
	_, ok = GetUserRole(c)
	assert.False(t, ok)
	_, ok = GetToken(c)
	assert.False(t, ok)

	c.Set(UserIDKey, uint(9))
	c.Set(UserRoleKey, model.RoleAdmin)
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)
	role, _ := GetUserRole(c)
	assert.Equal(t, model.RoleAdmin, role)
}
