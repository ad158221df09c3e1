package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zemenu6/dbrand-backend/internal/middleware"
	"github.com/zemenu6/dbrand-backend/internal/service"
	"github.com/zemenu6/dbrand-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *token.HSProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewHSProvider("test-secret", "dbrand-backend", "dbrand-web")

	r := gin.New()
	authed := r.Group("", middleware.AuthRequired(tokens, zap.NewNop()))
	authed.GET("/me", func(c *gin.Context) {
		p, ok := service.PrincipalFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID.String(), "role": string(p.Role)})
	})
	authed.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func doGet(r *gin.Engine, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	r, tokens := newTestRouter(t)

	uid := uuid.New()
	signed, _, err := tokens.SignAccess(context.Background(), uid, "USER", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", "Basic "+signed).Code)

	w := doGet(r, "/me", "Bearer "+signed)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), uid.String())
}

func TestRequireAdmin(t *testing.T) {
	r, tokens := newTestRouter(t)
	ctx := context.Background()

	userToken, _, err := tokens.SignAccess(ctx, uuid.New(), "USER", time.Hour)
	require.NoError(t, err)
	adminToken, _, err := tokens.SignAccess(ctx, uuid.New(), "ADMIN", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", "Bearer "+adminToken).Code)
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{`Bearer "abc"`, "abc", true},
		{"Bearer abc, extra", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Token abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := middleware.ExtractBearerToken(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
