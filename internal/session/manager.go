package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"careconnect_web/internal/logger"
	"careconnect_web/internal/models"
	"careconnect_web/pkg/apperrors"
	"careconnect_web/pkg/contextkeys"
)

type Options struct {
	CookieName string
	TTL        time.Duration // used when the token has no exp claim
	Secure     bool
}

// Manager binds a Store to the session cookie.
type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "careconnect_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, now: time.Now}
}

// Ping checks that the store is reachable. Stores without a backend always are.
func (m *Manager) Ping(ctx context.Context) error {
	p, ok := m.store.(Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return apperrors.ErrStorage(err)
	}
	return nil
}

// Start persists a new session for a successful login or registration and
// sets the cookie. A previous session of the same browser is dropped.
func (m *Manager) Start(c *gin.Context, auth models.AuthResponse) (*Session, error) {
	if old, err := c.Cookie(m.opts.CookieName); err == nil && old != "" {
		_ = m.store.Delete(c.Request.Context(), old)
	}

	now := m.now()
	sess := &Session{
		ID:        uuid.NewString(),
		User:      auth.User,
		Token:     auth.Token,
		CreatedAt: now,
		ExpiresAt: m.expiry(auth.Token, now),
	}
	if err := m.store.Save(c.Request.Context(), sess); err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	m.setCookie(c, sess.ID, int(sess.ExpiresAt.Sub(now).Seconds()))
	Set(c, sess)
	return sess, nil
}

// Load returns the session of the request or nil. A stale cookie is cleared.
func (m *Manager) Load(c *gin.Context) *Session {
	id, err := c.Cookie(m.opts.CookieName)
	if err != nil || id == "" {
		return nil
	}

	sess, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.CtxWarn(c.Request.Context(), "session lookup failed", "error", err)
		}
		m.setCookie(c, "", -1)
		return nil
	}
	return sess
}

// Destroy removes the session from the store and expires the cookie.
func (m *Manager) Destroy(c *gin.Context) error {
	c.Set(string(contextkeys.SessionContextKey), (*Session)(nil))

	id, err := c.Cookie(m.opts.CookieName)
	m.setCookie(c, "", -1)
	if err != nil || id == "" {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), id); err != nil {
		return apperrors.ErrStorage(err)
	}
	return nil
}

// expiry prefers the exp claim of the API token. The signature is not
// checked here, the API does that on every call.
func (m *Manager) expiry(token string, now time.Time) time.Time {
	fallback := now.Add(m.opts.TTL)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(now) {
		return fallback
	}
	return exp.Time
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, maxAge, "/", "", m.opts.Secure, true)
}

// Set stores sess on the gin context for the rest of the request.
func Set(c *gin.Context, sess *Session) {
	c.Set(string(contextkeys.SessionContextKey), sess)
}

// FromContext returns the session stored by Set, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(string(contextkeys.SessionContextKey))
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}
