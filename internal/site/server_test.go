package site

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/soham247/stellar-portfolio/internal/contact"
	"github.com/soham247/stellar-portfolio/internal/content"
	"github.com/soham247/stellar-portfolio/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelay answers every request with the given status and body.
func fakeRelay(t *testing.T, status int, body string) (string, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &calls
}

func closedRelayURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr + "/submit"
}

func createTestServer(t *testing.T, relayURL string, mutate func(*Config)) *Server {
	t.Helper()

	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "profile.jpg"), []byte("jpeg"), 0o644))

	cfg := NewConfig()
	cfg.AssetsDir = assets
	cfg.Contact.RelayURL = relayURL
	if mutate != nil {
		mutate(cfg)
	}

	c, err := content.Default()
	require.NoError(t, err)

	relay, err := contact.NewRelayClient(cfg.Contact.RelayURL)
	require.NoError(t, err)
	submitter := contact.NewSubmitter(relay, "test-key", "",
		contact.WithRateLimiter(contact.NewRateLimiter(cfg.Contact.RateLimit, cfg.Contact.Burst)))

	srv, err := NewServer(cfg, c, submitter)
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestNewServer_Validation(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	relay, err := contact.NewRelayClient(contact.DefaultRelayURL)
	require.NoError(t, err)
	submitter := contact.NewSubmitter(relay, "", "")

	cfg := NewConfig()
	cfg.Carousel.Step = 0
	_, err = NewServer(cfg, c, submitter)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewServer(NewConfig(), nil, submitter)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewServer(NewConfig(), c, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPages(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, nil)

	tests := []struct {
		path  string
		title string
		want  []string
	}{
		{"/", "Soham Sadhukhan", []string{"Top Projects", "Achievement Constellation", "HackWars", "Kraf Technologies", "devicon-nextjs-plain"}},
		{"/aboutme", "About Me", []string{"Hello, Digital Explorer!", "<strong>MERN stack developer</strong>", "<em>Ctrl+Alt+Del</em>"}},
		{"/projects", "My Projects", []string{"Jeevan Verse", "Weather App", "https://github.com/soham247/Spending-Diary", "Socket.io"}},
		{"/skills", "My Skills", []string{"Frontend Frameworks", "Tools &amp; Technologies", "PostgreSQL"}},
		{"/contact", "Contact Me", []string{`action="/contact"`, `data-api="/api/contact"`, "Send Message"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, srv, tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

			body := w.Body.String()
			assert.Contains(t, body, "<title>")
			assert.Contains(t, body, tt.title)
			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}

			// exactly one nav item is marked active, and it is this page
			assert.Equal(t, 1, strings.Count(body, `aria-current="page"`))
			active := regexp.MustCompile(`href="` + regexp.QuoteMeta(tt.path) + `" class="[^"]*" aria-current="page"`)
			assert.Regexp(t, active, body)
		})
	}
}

func TestHome_Carousel(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, func(cfg *Config) {
		cfg.Carousel.Step = 2
	})

	body := get(t, srv, "/").Body.String()
	assert.Equal(t, 9, strings.Count(body, `class="carousel-card"`))
	assert.Equal(t, 3, strings.Count(body, `alt="Spending Diary"`))
	assert.Contains(t, body, `data-step="2"`)
	assert.Contains(t, body, "--carousel-card-width: 384px")
	assert.Contains(t, body, "/static/carousel.js?v=")
}

func TestTheme(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, nil)

	t.Run("light by default", func(t *testing.T) {
		w := get(t, srv, "/skills")
		body := w.Body.String()
		assert.Contains(t, body, `<html lang="en" class="light">`)
		assert.NotContains(t, body, "starfield")
		assert.Contains(t, body, theme.Resolve(theme.Light).AccentColor)
		assert.Equal(t, theme.HintHeader, w.Header().Get("Accept-CH"))
	})

	t.Run("dark from cookie", func(t *testing.T) {
		w := get(t, srv, "/skills", &http.Cookie{Name: theme.CookieName, Value: "dark"})
		body := w.Body.String()
		assert.Contains(t, body, `<html lang="en" class="dark">`)
		assert.Contains(t, body, "starfield")
		assert.Contains(t, body, theme.Resolve(theme.Dark).AccentColor)
	})

	t.Run("dark from client hint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(theme.HintHeader, "dark")
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), `class="dark"`)
	})
}

func TestThemeToggle(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, nil)

	tests := []struct {
		name     string
		cookie   string
		form     url.Values
		referer  string
		location string
		mode     string
	}{
		{"light to dark", "", url.Values{"return": {"/skills"}}, "", "/skills", "dark"},
		{"dark to light", "dark", url.Values{"return": {"/aboutme"}}, "", "/aboutme", "light"},
		{"referer fallback", "", nil, "http://example.com/projects", "/projects", "dark"},
		{"foreign referer", "", nil, "http://evil.example/phish", "/", "dark"},
		{"protocol relative", "", url.Values{"return": {"//evil.example/"}}, "", "/", "dark"},
		{"absolute return", "", url.Values{"return": {"https://evil.example/"}}, "", "/", "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://example.com/theme", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: theme.CookieName, Value: tt.cookie})
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, theme.CookieName, cookies[0].Name)
			assert.Equal(t, tt.mode, cookies[0].Value)
		})
	}
}

func TestLocalPath(t *testing.T) {
	tests := map[string]string{
		"":                "/",
		"/":               "/",
		"/skills":         "/skills",
		"/contact?x=1":    "/contact?x=1",
		"//evil.example":  "/",
		"/\\evil.example": "/",
		"javascript:x":    "/",
		"skills":          "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, localPath(in), "localPath(%q)", in)
	}
}

func TestNotFound(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, nil)

	w := get(t, srv, "/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Lost in Digital Space")
	assert.Contains(t, body, "Return Home")
	assert.Equal(t, 0, strings.Count(body, `aria-current="page"`))
}

func TestResume(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, nil)
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/resume").Code)
	assert.NotContains(t, get(t, srv, "/").Body.String(), "View Resume")

	srv = createTestServer(t, contact.DefaultRelayURL, func(cfg *Config) {
		cfg.ResumeURL = "https://example.com/resume.pdf"
	})
	w := get(t, srv, "/resume")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/resume.pdf", w.Header().Get("Location"))
	assert.Contains(t, get(t, srv, "/").Body.String(), "View Resume")
}

func TestHealthAndAssets(t *testing.T) {
	srv := createTestServer(t, contact.DefaultRelayURL, nil)

	w := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())

	w = get(t, srv, "/static/styles.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".carousel-track")

	w = get(t, srv, "/static/nonexistent.css")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, srv, "/assets/profile.jpg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())
}
