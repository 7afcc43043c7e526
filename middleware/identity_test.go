package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seamless/timesheet/config"
	"github.com/seamless/timesheet/directory"
	"github.com/seamless/timesheet/userctx"
)

func newTestResolver(env string) *IdentityResolver {
	cfg := config.Default()
	cfg.Server.Env = env
	// No directory configured: lookups fall back to the username
	return NewIdentityResolver(cfg, directory.NewClient("", ""))
}

// captureHandler records the identity the middleware injected
func captureHandler(identity *userctx.Identity, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, ok := userctx.GetIdentity(r.Context()); ok {
			*identity = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityFromSSOHeader(t *testing.T) {
	resolver := newTestResolver("production")

	var identity userctx.Identity
	var called bool
	handler := resolver.Handler(captureHandler(&identity, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Rstudio-Connect-Credentials", `{"user": "jane.doe"}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, "jane.doe", identity.Email)
	assert.Equal(t, userctx.SourceSSOHeader, identity.Source)
}

func TestMalformedHeaderNeverFallsThrough(t *testing.T) {
	// Even in dev mode, a present-but-broken header must be a 401, not a
	// silent switch to the dev override.
	resolver := newTestResolver("development")

	var identity userctx.Identity
	var called bool
	handler := resolver.Handler(captureHandler(&identity, &called))

	req := httptest.NewRequest(http.MethodGet, "/?user=sneaky@example.com", nil)
	req.Header.Set("Rstudio-Connect-Credentials", "not-json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHeaderWinsOverQueryOverride(t *testing.T) {
	resolver := newTestResolver("development")

	var identity userctx.Identity
	var called bool
	handler := resolver.Handler(captureHandler(&identity, &called))

	req := httptest.NewRequest(http.MethodGet, "/?user=sneaky@example.com", nil)
	req.Header.Set("Rstudio-Connect-Credentials", `{"user": "jane.doe"}`)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, "jane.doe", identity.Email)
}

func TestDevOverrideWithoutHeader(t *testing.T) {
	resolver := newTestResolver("development")

	var identity userctx.Identity
	var called bool
	handler := resolver.Handler(captureHandler(&identity, &called))

	req := httptest.NewRequest(http.MethodGet, "/?user=tester@example.com", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, "tester@example.com", identity.Email)
	assert.Equal(t, userctx.SourceDevOverride, identity.Source)
}

func TestDevFallbackUserWhenNoOverrideGiven(t *testing.T) {
	resolver := newTestResolver("development")

	var identity userctx.Identity
	var called bool
	handler := resolver.Handler(captureHandler(&identity, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, "dev.user@example.com", identity.Email)
}

func TestProductionWithoutHeaderRejected(t *testing.T) {
	resolver := newTestResolver("production")

	var identity userctx.Identity
	var called bool
	handler := resolver.Handler(captureHandler(&identity, &called))

	req := httptest.NewRequest(http.MethodGet, "/?user=sneaky@example.com", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
