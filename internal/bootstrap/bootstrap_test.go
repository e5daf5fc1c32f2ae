package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appRepos "github.com/yigit/schooldirectory/internal/app/repositories"
	"github.com/yigit/schooldirectory/internal/config"
)

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	store := &Store{Driver: config.StoreDriverMemory, Repos: appRepos.NewMemoryRepositories()}
	deps, err := BuildDependencies(context.Background(), cfg, store, zerolog.Nop())
	require.NoError(t, err)
	return SetupRouter(cfg, deps, zerolog.Nop())
}

func preflight(router http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/schools", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_EmptyCORSOriginsAllowsAll(t *testing.T) {
	cfg := &config.Config{}

	var router *gin.Engine
	require.NotPanics(t, func() { router = newTestRouter(t, cfg) })

	w := preflight(router, "https://anywhere.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_ExplicitCORSOrigins(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"https://app.example"}
	router := newTestRouter(t, cfg)

	w := preflight(router, "https://app.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(router, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNewCORSConfig(t *testing.T) {
	assert.True(t, newCORSConfig(nil).AllowAllOrigins)
	assert.True(t, newCORSConfig([]string{"https://a.example", "*"}).AllowAllOrigins)

	c := newCORSConfig([]string{"https://a.example"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example"}, c.AllowOrigins)
	assert.NoError(t, c.Validate())
}
