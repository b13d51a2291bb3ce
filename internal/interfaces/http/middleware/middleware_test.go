package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/infrastructure/auth"
	"github.com/assetflow/assetflow/internal/shared/authorization"
	"github.com/assetflow/assetflow/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoAmI(c *gin.Context) {
	userID, role, ok := CurrentUser(c)
	if !ok {
		c.Status(http.StatusTeapot)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", 15)
	token, err := jwtSvc.Generate(7, authorization.RoleModeler)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", NewAuthMiddleware(jwtSvc, logger.NewNopLogger()).RequireAuth(), whoAmI)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"modeler"}`, w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", 15)
	r := gin.New()
	r.GET("/me", NewAuthMiddleware(jwtSvc, logger.NewNopLogger()).RequireAuth(), whoAmI)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddleware_QueryTokenOnlyWhenAllowed(t *testing.T) {
	jwtSvc := auth.NewJWTService("secret", 15)
	token, err := jwtSvc.Generate(3, authorization.RoleAdmin)
	require.NoError(t, err)

	m := NewAuthMiddleware(jwtSvc, logger.NewNopLogger())
	r := gin.New()
	r.GET("/ws", m.RequireAuthOrQueryToken(), whoAmI)
	r.GET("/api", m.RequireAuth(), whoAmI)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api?token="+token, nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type fakeEnforcer struct {
	allowed bool
	err     error
	got     []string
}

func (f *fakeEnforcer) Enforce(role, resource, action string) (bool, error) {
	f.got = []string{role, resource, action}
	return f.allowed, f.err
}

func withUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUserRole, role)
		c.Next()
	}
}

func TestPermissionMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		enforcer *fakeEnforcer
		setUser  bool
		want     int
	}{
		{"allowed", &fakeEnforcer{allowed: true}, true, http.StatusOK},
		{"denied", &fakeEnforcer{allowed: false}, true, http.StatusForbidden},
		{"enforcer error", &fakeEnforcer{err: errors.New("adapter down")}, true, http.StatusInternalServerError},
		{"unauthenticated", &fakeEnforcer{allowed: true}, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPermissionMiddleware(tt.enforcer, logger.NewNopLogger())
			r := gin.New()
			handlers := []gin.HandlerFunc{}
			if tt.setUser {
				handlers = append(handlers, withUser(5, "qa"))
			}
			handlers = append(handlers, pm.RequirePermission("qa_asset_list", "read"), whoAmI)
			r.GET("/qa/asset-lists", handlers...)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qa/asset-lists", nil))

			assert.Equal(t, tt.want, w.Code)
			if tt.setUser {
				assert.Equal(t, []string{"qa", "qa_asset_list", "read"}, tt.enforcer.got)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyRequestID))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "client-supplied")
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied", w.Body.String())
	assert.Equal(t, "client-supplied", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/boom", func(c *gin.Context) {
		panic("unexpected nil asset")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://review.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://review.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://review.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
