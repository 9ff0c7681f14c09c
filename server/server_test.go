package server_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/cds-portal/internal/clock"
	"github.com/jrsteele09/cds-portal/internal/config"
	"github.com/jrsteele09/cds-portal/internal/metrics"
	"github.com/jrsteele09/cds-portal/mockauth"
	"github.com/jrsteele09/cds-portal/portal"
	"github.com/jrsteele09/cds-portal/recipes"
	"github.com/jrsteele09/cds-portal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	clock  *clock.Fake
	repo   *portal.InMemoryRepo
	server *httptest.Server
	client *http.Client
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	fc := clock.NewFake(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	reg := prometheus.NewRegistry()
	recorder := metrics.NewCollector(reg)
	searcher := recipes.NewStaticSearcher(recipes.MockRecipes())

	repo := portal.NewInMemoryRepo(portal.Deps{
		Clock:      fc,
		Recorder:   recorder,
		LoginDelay: time.Second,
		NewProvider: func(onSignedIn func()) (*mockauth.Provider, error) {
			return mockauth.New(
				mockauth.WithClock(fc),
				mockauth.WithHostedUI(mockauth.NewHostedUI(config.OIDC{})),
				mockauth.WithSignInListener(onSignedIn),
			)
		},
		NewBrowser: func() *recipes.Browser {
			return recipes.NewBrowser(searcher, config.EmptyQueryNone)
		},
	})

	s, err := server.New(config.New(), repo, searcher, recorder, reg)
	require.NoError(t, err)

	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &serverFixture{
		clock:  fc,
		repo:   repo,
		server: ts,
		client: &http.Client{Jar: jar},
	}
}

func (f *serverFixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (f *serverFixture) toLogin(t *testing.T) string {
	t.Helper()
	_, body := f.post(t, "/register", url.Values{"action": {"login"}})
	return body
}

// post submits a form and follows the redirect back to the index.
func (f *serverFixture) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.server.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndex_StartsOnRegister(t *testing.T) {
	f := setupServer(t)

	resp, body := f.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Create Account")
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	require.Equal(t, 1, f.repo.Len())

	f.get(t, "/")
	require.Equal(t, 1, f.repo.Len(), "the session cookie is reused")
}

func TestRegisterThenLogin(t *testing.T) {
	f := setupServer(t)
	f.get(t, "/")

	_, body := f.post(t, "/register", url.Values{"email": {"new@example.com"}, "password": {"pw"}, "confirmPassword": {"nope"}})
	require.Contains(t, body, "Passwords do not match")

	_, body = f.post(t, "/register", url.Values{"email": {"new@example.com"}, "password": {"pw"}, "confirmPassword": {"pw"}})
	require.Contains(t, body, "Registration successful! Please log in with your new account.")
	require.Contains(t, body, "Forgot Password?")

	_, body = f.get(t, "/")
	require.NotContains(t, body, "Registration successful!")

	_, body = f.post(t, "/login", url.Values{"email": {""}, "password": {"pw"}})
	require.Contains(t, body, "Error: Please fill in all fields")

	_, body = f.post(t, "/login", url.Values{"email": {"new@example.com"}, "password": {"pw"}})
	require.Contains(t, body, "Login successful! Redirecting to dashboard...")
	require.Contains(t, body, `http-equiv="refresh"`)

	f.clock.Advance(time.Second)
	_, body = f.get(t, "/")
	require.Contains(t, body, "Welcome, user!")

	_, body = f.post(t, "/welcome/logout", nil)
	require.Contains(t, body, "Forgot Password?")
}

func TestForgotPassword(t *testing.T) {
	f := setupServer(t)
	require.Contains(t, f.toLogin(t), "Forgot Password?")

	_, body := f.post(t, "/login/forgot", nil)
	require.Contains(t, body, "Forgot Password functionality coming soon!")
}

func TestHostedUISignIn(t *testing.T) {
	f := setupServer(t)
	f.toLogin(t)

	_, body := f.post(t, "/login/oidc", nil)
	require.Contains(t, body, "Loading...")

	f.clock.Advance(1500 * time.Millisecond)
	_, body = f.post(t, "/login/oidc/signin", nil)
	require.Contains(t, body, "/oauth2/authorize")

	f.clock.Advance(time.Second)
	_, body = f.get(t, "/")
	require.Contains(t, body, "ID token verified for "+mockauth.DefaultProfileEmail)

	f.clock.Advance(500 * time.Millisecond)
	_, body = f.get(t, "/")
	require.Contains(t, body, "Welcome, user!")
}

func TestLoginLinkBackToRegister(t *testing.T) {
	f := setupServer(t)
	f.toLogin(t)

	_, body := f.post(t, "/login", url.Values{"action": {"register"}})
	require.Contains(t, body, "Create Account")
	require.NotContains(t, body, "Forgot Password?")
}

func signIn(t *testing.T, f *serverFixture) {
	t.Helper()
	f.toLogin(t)
	f.post(t, "/login", url.Values{"email": {"user@example.com"}, "password": {"pw"}})
	f.clock.Advance(time.Second)
}

func TestToDoFromWelcome(t *testing.T) {
	f := setupServer(t)
	signIn(t, f)

	_, body := f.post(t, "/welcome/todo", nil)
	require.Contains(t, body, "To-Do List")

	_, body = f.post(t, "/todo", url.Values{"title": {"Water plants"}})
	require.Contains(t, body, "Water plants")
	require.Contains(t, body, "1 remaining")

	_, body = f.post(t, "/todo/back", nil)
	require.Contains(t, body, "Welcome, user!")
}

func TestWelcomeButtonsRejectedOffScreen(t *testing.T) {
	f := setupServer(t)

	resp, body := f.post(t, "/welcome/dashboard", nil)
	require.Contains(t, resp.Request.URL.RawQuery, "error=")
	require.Contains(t, body, "That action is not available on this screen.")
	require.Contains(t, body, "Create Account")

	_, body = f.post(t, "/todo/back", nil)
	require.Contains(t, body, "That action is not available on this screen.")
}

func TestDashboardSpiceRack(t *testing.T) {
	f := setupServer(t)
	signIn(t, f)

	_, body := f.post(t, "/welcome/dashboard", nil)
	require.Contains(t, body, "Dashboard")
	require.Contains(t, body, `action="/dashboard/spice-rack"`)

	_, body = f.post(t, "/dashboard/spice-rack", nil)
	require.Contains(t, body, "Spice Rack")

	_, body = f.post(t, "/recipes/search", url.Values{"query": {"Lasagna"}})
	require.Contains(t, strings.ToLower(body), "lasagna")
	require.NotContains(t, body, "Burger")

	_, body = f.post(t, "/recipes/1/favorite", nil)
	require.Contains(t, body, `class="recipe favorite"`)
	_, body = f.post(t, "/recipes/1/favorite", nil)
	require.NotContains(t, body, `class="recipe favorite"`)
}

func TestUnknownWelcomeActionShowsError(t *testing.T) {
	f := setupServer(t)
	signIn(t, f)

	resp, body := f.post(t, "/welcome/settings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Request.URL.RawQuery, "error=")
	require.Contains(t, body, "Unknown destination.")
}

func TestHTMXRequestsGetRedirectHeader(t *testing.T) {
	f := setupServer(t)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/register", strings.NewReader("action=login"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("HX-Redirect"))
}

func TestRecipesAPI(t *testing.T) {
	f := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/api/recipes?query=&sort=rating", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5176")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "http://localhost:5176", resp.Header.Get("Access-Control-Allow-Origin"))

	var got []recipes.Recipe
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 3)
	require.Equal(t, "Apple Pie", got[0].Title)
	require.Equal(t, "Burger", got[2].Title)
}

func TestRecipesAPI_DisallowedOrigin(t *testing.T) {
	f := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/api/recipes?query=pie", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	f := setupServer(t)
	f.get(t, "/")

	resp, body := f.get(t, "/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok","sessions":1}`, body)

	resp, body = f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, `cds_portal_renders_total{screen="register"}`)
}

func TestStaticCSS(t *testing.T) {
	f := setupServer(t)

	resp, body := f.get(t, "/css/portal.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/css")
	require.Contains(t, body, ".card")

	resp, _ = f.get(t, "/css/missing.css")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
