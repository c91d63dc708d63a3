// Package session keeps the signed-in user's backend token and role in an
// encrypted cookie, along with one-shot flash messages.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bar-comandas/web/internal/config"
	"github.com/bar-comandas/web/internal/models"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	cookieName = "bar_session"

	keyID        = "sid"
	keyToken     = "token"
	keyLogin     = "login"
	keyRole      = "perfil"
	keyExpiresAt = "exp"

	revokedCapacity = 100_000
	revokedFPRate   = 0.001
)

var (
	// ErrNoSession is returned when the request carries no usable session.
	ErrNoSession = errors.New("no session")
	// ErrSessionExpired is returned when the backend token has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrSessionRevoked is returned for cookies of sessions that logged out.
	ErrSessionRevoked = errors.New("session revoked")
)

// Session is the signed-in user as seen by page handlers.
type Session struct {
	ID        string
	Token     string
	Login     string
	Role      string
	ExpiresAt time.Time
}

// IsAdmin reports whether the user may enter the admin area.
func (s *Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// FlashKind selects how a flash message is rendered.
type FlashKind string

const (
	FlashError   FlashKind = "error"
	FlashSuccess FlashKind = "success"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Kind    FlashKind
	Message string
}

func init() {
	gob.Register(Flash{})
	gob.Register(time.Time{})
}

// Manager issues, reads and revokes sessions.
type Manager struct {
	store  *sessions.CookieStore
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	revoked *bloom.BloomFilter
}

// NewManager creates a session manager whose cookie keys are derived from cfg.Secret.
func NewManager(cfg config.SessionConfig, logger *slog.Logger) (*Manager, error) {
	hashKey, err := deriveKey(cfg.Secret, "bar-session-auth", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(cfg.Secret, "bar-session-enc", 32)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)

	return &Manager{
		store:   store,
		logger:  logger,
		now:     time.Now,
		revoked: bloom.NewWithEstimates(revokedCapacity, revokedFPRate),
	}, nil
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", info, err)
	}
	return key, nil
}

// Start stores a freshly obtained backend token in a new session cookie.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, login string, resp models.LoginResponse) (*Session, error) {
	sess, err := m.store.New(r, cookieName)
	if err != nil && sess == nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Token:     resp.Token,
		Login:     login,
		Role:      resp.Role,
		ExpiresAt: tokenExpiry(resp.Token),
	}

	sess.Values = map[interface{}]interface{}{
		keyID:        s.ID,
		keyToken:     s.Token,
		keyLogin:     s.Login,
		keyRole:      s.Role,
		keyExpiresAt: s.ExpiresAt,
	}
	if err := sess.Save(r, w); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// Current returns the session carried by r.
func (m *Manager) Current(r *http.Request) (*Session, error) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil || sess.IsNew {
		return nil, ErrNoSession
	}

	s := &Session{}
	s.ID, _ = sess.Values[keyID].(string)
	s.Token, _ = sess.Values[keyToken].(string)
	s.Login, _ = sess.Values[keyLogin].(string)
	s.Role, _ = sess.Values[keyRole].(string)
	s.ExpiresAt, _ = sess.Values[keyExpiresAt].(time.Time)

	if s.ID == "" || s.Token == "" {
		return nil, ErrNoSession
	}
	if m.isRevoked(s.ID) {
		return nil, ErrSessionRevoked
	}
	if !s.ExpiresAt.IsZero() && !m.now().Before(s.ExpiresAt) {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Destroy clears the session cookie and revokes its id.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, cookieName)
	if err != nil && sess == nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if id, ok := sess.Values[keyID].(string); ok && id != "" {
		m.revoke(id)
	}

	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// AddFlash queues a message for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, f Flash) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil && sess == nil {
		m.logger.Warn("failed to read session for flash", "error", err)
		return
	}
	sess.AddFlash(f)
	if err := sess.Save(r, w); err != nil {
		m.logger.Warn("failed to save flash", "error", err)
	}
}

// Flashes pops the queued messages. It must run before the response body is written.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, err := m.store.Get(r, cookieName)
	if err != nil && sess == nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		m.logger.Warn("failed to save session after reading flashes", "error", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

func (m *Manager) revoke(id string) {
	m.mu.Lock()
	m.revoked.AddString(id)
	m.mu.Unlock()
}

func (m *Manager) isRevoked(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revoked.TestString(id)
}

// tokenExpiry reads the exp claim of a backend JWT without verifying it;
// the backend remains the authority. Opaque tokens yield the zero time.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
