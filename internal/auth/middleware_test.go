package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(m *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "role": GetRole(c), "admin": IsAdmin(c)})
	}
	r.GET("/me", AuthRequired(m), whoami)
	r.GET("/admin", AuthRequired(m), AdminRequired(), whoami)
	return r
}

func TestAuthRequired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	r := newTestRouter(m)

	clientToken, err := m.GenerateAccessToken("client-1", "", RoleClient)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		query  string
		ws     bool
		want   int
	}{
		{"Bearer token", "Bearer " + clientToken, "", false, http.StatusOK},
		{"Lowercase scheme", "bearer " + clientToken, "", false, http.StatusOK},
		{"Missing header", "", "", false, http.StatusUnauthorized},
		{"Wrong scheme", "Basic abc", "", false, http.StatusUnauthorized},
		{"Invalid token", "Bearer nope", "", false, http.StatusUnauthorized},
		{"Query token on websocket upgrade", "", clientToken, true, http.StatusOK},
		{"Query token without upgrade", "", clientToken, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/me"
			if tt.query != "" {
				path += "?access_token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.ws {
				req.Header.Set("Upgrade", "websocket")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	r := newTestRouter(m)

	clientToken, _ := m.GenerateAccessToken("client-1", "", RoleClient)
	adminToken, _ := m.GenerateAccessToken("admin-1", "", RoleAdmin)

	for token, want := range map[string]int{
		clientToken: http.StatusForbidden,
		adminToken:  http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}
