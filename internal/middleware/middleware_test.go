package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recipeshare/internal/logging"
	"recipeshare/internal/services"
	"recipeshare/internal/store/memory"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer   abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newEngine(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logging.Init(logging.Config{Level: "disabled"})

	st := memory.New()
	auth := services.NewAuthService(st, services.NewTokenService("secret", time.Hour), bcrypt.MinCost)
	_, err := auth.Register(context.Background(), "amy", "amy@example.com", "secret1")
	require.NoError(t, err)
	login, err := auth.Login(context.Background(), "amy@example.com", "secret1")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestID(), AccessLog(), LoadUser(auth))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":        CurrentUserID(c),
			"requestId": logging.RequestIDFromContext(c.Request.Context()),
		})
	})
	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	return r, login.Token
}

func serve(r *gin.Engine, path, authHeader string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoadUserIsOptional(t *testing.T) {
	r, token := newEngine(t)

	w := serve(r, "/whoami", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":0`)

	w = serve(r, "/whoami", "Bearer "+token, RequestIDHeader, "req-123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
	assert.Contains(t, w.Body.String(), `"requestId":"req-123"`)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestAuthRequired(t *testing.T) {
	r, token := newEngine(t)

	w := serve(r, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, no token"}`, w.Body.String())

	w = serve(r, "/private", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Not authorized, token failed"}`, w.Body.String())

	w = serve(r, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"amy"}`, w.Body.String())
}
