// Package testutil assembles a full server over in-memory stores for handler
// tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pollhub/backend/internal/auth"
	"github.com/pollhub/backend/internal/polls"
	"github.com/pollhub/backend/internal/router"
)

// CookieName is the session cookie name used by test servers.
const CookieName = "poll_session"

// Server is a fully wired application over in-memory stores.
type Server struct {
	Router       *gin.Engine
	Users        *auth.MemoryUserStore
	Polls        *polls.MemoryStore
	Sessions     *auth.Sessions
	SessionStore *auth.MemorySessionStore
}

// NewServer builds a test server with the same routing and middleware as
// production.
func NewServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := auth.NewMemoryUserStore()
	sessionStore := auth.NewMemorySessionStore()
	sessions := auth.NewSessions("test-secret", 1, sessionStore, users)
	pollStore := polls.NewMemoryStore()

	engine := router.New(router.Deps{
		Logger:   zap.NewNop(),
		Users:    users,
		Polls:    pollStore,
		Sessions: sessions,
		Cookie:   auth.CookieConfig{Name: CookieName},
	})

	return &Server{
		Router:       engine,
		Users:        users,
		Polls:        pollStore,
		Sessions:     sessions,
		SessionStore: sessionStore,
	}
}

// Do performs a request against the server. A nil form sends no body; a nil
// cookie sends an anonymous request.
func (s *Server) Do(t *testing.T, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Register creates an account through the HTTP surface and returns its
// session cookie.
func (s *Server) Register(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := s.Do(t, http.MethodPost, "/polls/register/", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register %q: expected %d, got %d (%s)", username, http.StatusSeeOther, w.Code, w.Body.String())
	}
	return SessionCookie(t, w)
}

// SessionCookie extracts the session cookie from a response.
func SessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}
