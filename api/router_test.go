package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubTokenizer struct{}

func (stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "valid", nil
}

func (stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "valid" {
		return nil, errors.New("bad token")
	}
	return map[string]interface{}{"sub": "tester"}, nil
}

type pingController struct{}

func (pingController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
}

func (pingController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/whoami", func(ctx *gin.Context) {
		claims := ctx.MustGet(identity.ContextUserClaims).(map[string]interface{})
		ctx.String(http.StatusOK, claims["sub"].(string))
	})
}

func TestRouterEngine(t *testing.T) {
	router := NewRouter(Config{
		BaseURL:                 "/api",
		GinMode:                 gin.TestMode,
		Controllers:             []i.Controller{pingController{}},
		AuthorizationMiddleware: identity.Authorize(stubTokenizer{}),
	})
	engine := router.Engine()

	tests := []struct {
		name   string
		path   string
		header string
		code   int
		body   string
	}{
		{name: "Public", path: "/api/v1/ping", code: http.StatusOK, body: "pong"},
		{name: "Protected without header", path: "/api/v1/whoami", code: http.StatusUnauthorized},
		{name: "Protected malformed header", path: "/api/v1/whoami", header: "Token valid", code: http.StatusUnauthorized},
		{name: "Protected invalid token", path: "/api/v1/whoami", header: "Bearer nope", code: http.StatusUnauthorized},
		{name: "Protected", path: "/api/v1/whoami", header: "Bearer valid", code: http.StatusOK, body: "tester"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestNewRouterDefaultsToReleaseMode(t *testing.T) {
	router := NewRouter(Config{})
	assert.Equal(t, gin.ReleaseMode, router.ginMode)
}
