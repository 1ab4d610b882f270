package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveFromQuery mirrors the provider resolution installed at boot: only
// the query and form are consulted, never the path.
func resolveFromQuery(req *http.Request) (string, error) {
	if provider := req.URL.Query().Get("provider"); provider != "" {
		return provider, nil
	}
	if provider := req.FormValue("provider"); provider != "" {
		return provider, nil
	}
	return "", errors.New("provider not found")
}

func TestBeginAuthResolvesProviderFromPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gothic.Store = sessions.NewCookieStore([]byte("test_session_secret"))
	goth.UseProviders(google.New("client-id", "client-secret", "http://localhost:8080/api/auth/google/callback"))
	defer goth.ClearProviders()

	oldResolver := gothic.GetProviderName
	gothic.GetProviderName = resolveFromQuery
	defer func() { gothic.GetProviderName = oldResolver }()

	r := gin.New()
	r.GET("/api/auth/:provider", BeginAuth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	r.ServeHTTP(w, req)

	// The path param must reach gothic: a working begin is a redirect to the
	// provider's consent screen, not a 400.
	require.Equal(t, http.StatusTemporaryRedirect, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	assert.Contains(t, location, "accounts.google.com")
	assert.Contains(t, location, "client_id=client-id")
}

func TestSetGothicProviderPreservesCallbackQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state=xyz", nil)

	setGothicProvider(c, "google")

	provider, err := resolveFromQuery(c.Request)
	require.NoError(t, err)
	assert.Equal(t, "google", provider)
	assert.Equal(t, "abc", c.Request.URL.Query().Get("code"))
	assert.Equal(t, "xyz", c.Request.URL.Query().Get("state"))
}
