package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bar-comandas/web/internal/config"
	"github.com/bar-comandas/web/internal/models"
	"github.com/bar-comandas/web/internal/probe"
	"github.com/bar-comandas/web/internal/service/mocks"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
	"github.com/bar-comandas/web/pkg/logger"
	"github.com/stretchr/testify/require"
)

type staticStatus probe.Status

func (s staticStatus) Status() probe.Status { return probe.Status(s) }

type testEnv struct {
	api      *mocks.MockAPI
	sessions *session.Manager
	router   http.Handler
	// jar holds the latest value of each cookie the server set
	jar map[string]*http.Cookie
}

func newTestEnv(t *testing.T, apiBase string) *testEnv {
	t.Helper()
	log := logger.New("error")

	renderer, err := views.New()
	require.NoError(t, err)

	sessions, err := session.NewManager(config.SessionConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		MaxAge: 3600,
	}, log)
	require.NoError(t, err)

	if apiBase == "" {
		apiBase = "http://127.0.0.1:1"
	}
	base, err := url.Parse(apiBase)
	require.NoError(t, err)

	api := new(mocks.MockAPI)
	return &testEnv{
		api:      api,
		sessions: sessions,
		jar:      map[string]*http.Cookie{},
		router: NewRouter(RouterConfig{
			API:            api,
			APIBaseURL:     base,
			Views:          renderer,
			Sessions:       sessions,
			Backend:        staticStatus{Reachable: true},
			AllowedOrigins: []string{"*"},
			RefreshSeconds: 30,
			Logger:         log,
		}),
	}
}

// signIn starts a session with role and keeps its cookie for later requests.
func (e *testEnv) signIn(t *testing.T, role string) {
	t.Helper()
	w := httptest.NewRecorder()
	_, err := e.sessions.Start(w, httptest.NewRequest(http.MethodPost, "/login", nil), "ana", models.LoginResponse{
		Token: "opaque-token",
		Role:  role,
	})
	require.NoError(t, err)
	e.keep(w)
}

func (e *testEnv) keep(w *httptest.ResponseRecorder) {
	for _, c := range w.Result().Cookies() {
		e.jar[c.Name] = c
	}
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.jar {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	e.keep(w)
	return w
}

// assertRedirect checks a 303 to location.
func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusSeeOther, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("body does not contain %q", s)
		}
	}
}
