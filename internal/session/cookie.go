package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/portal/internal/domain"
	"github.com/spf13/afero"
)

// PersistentMaxAge is the cookie lifetime used for "keep me logged in".
const PersistentMaxAge = 30 * 24 * 60 * 60

// BrowserSessionTTL bounds how long the server keeps the payload of a login
// whose cookie only lasts for the browser session.
const BrowserSessionTTL = 24 * time.Hour

const (
	valueID   = "sid"
	recordExt = ".json"
)

// Session is the server-side view of an established login.
type Session struct {
	Data         json.RawMessage
	Token        string
	ExpiresAt    time.Time
	KeepLoggedIn bool
	CreatedAt    time.Time
}

// storedSession is the server-side record a session cookie points to.
type storedSession struct {
	Data         json.RawMessage `json:"data"`
	KeepLoggedIn bool            `json:"keep_logged_in"`
	CreatedAt    time.Time       `json:"created_at"`
	StoredUntil  time.Time       `json:"stored_until"`
}

// Manager keeps login payloads server-side in dir on fsys and puts only the
// session ID in a gorilla session cookie. It relies on the echo-contrib
// session middleware being installed.
type Manager struct {
	name string
	fs   afero.Fs
	dir  string
	now  func() time.Time
}

// NewManager creates a Manager for the named cookie session.
func NewManager(name string, fsys afero.Fs, dir string) *Manager {
	return &Manager{name: name, fs: fsys, dir: dir, now: time.Now}
}

// For returns a SessionStore bound to the current request.
func (m *Manager) For(c echo.Context) domain.SessionStore {
	return &cookieSession{m: m, c: c}
}

// Current returns the session attached to the request, or domain.ErrNoSession.
func (m *Manager) Current(c echo.Context) (*Session, error) {
	sess, err := m.load(c)
	if err != nil {
		return nil, err
	}
	id, _ := sess.Values[valueID].(string)
	rec, err := m.read(id)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if !rec.StoredUntil.After(now) {
		_ = m.remove(id)
		return nil, domain.ErrNoSession
	}

	s := &Session{
		Data:         rec.Data,
		KeepLoggedIn: rec.KeepLoggedIn,
		CreatedAt:    rec.CreatedAt,
		Token:        TokenFrom(rec.Data),
	}
	if exp, ok := TokenExpiry(s.Token); ok {
		if !exp.After(now) {
			return nil, domain.ErrNoSession
		}
		s.ExpiresAt = exp
	}
	return s, nil
}

// Clear removes the stored payload and expires the session cookie.
func (m *Manager) Clear(c echo.Context) error {
	sess, err := m.load(c)
	if err != nil {
		return err
	}
	if id, ok := sess.Values[valueID].(string); ok {
		if err := m.remove(id); err != nil {
			return err
		}
	}
	sess.Values = map[interface{}]interface{}{}
	sess.Options = m.options(c, -1)
	return sess.Save(c.Request(), c.Response())
}

// Prune deletes stored sessions whose lifetime has passed, along with records
// that can no longer be decoded. It returns how many were removed.
func (m *Manager) Prune() (int, error) {
	entries, err := afero.ReadDir(m.fs, m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	now := m.now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), recordExt)
		if _, ok := m.recordPath(id); !ok {
			continue
		}
		rec, err := m.read(id)
		if err == nil && rec.StoredUntil.After(now) {
			continue
		}
		if err := m.remove(id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// load returns the named session. A cookie that fails to decode (rotated
// secret, tampering) yields a fresh, empty session instead of an error.
func (m *Manager) load(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(m.name, c)
	if sess == nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

func (m *Manager) options(c echo.Context, maxAge int) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

// maxAge picks the cookie lifetime: a browser-session cookie unless the user
// asked to stay logged in, in which case it lasts until the token expires,
// capped at PersistentMaxAge. Expired tokens are rejected before this is called.
func (m *Manager) maxAge(data json.RawMessage, keepLoggedIn bool) int {
	if !keepLoggedIn {
		return 0
	}
	exp, ok := TokenExpiry(TokenFrom(data))
	if !ok {
		return PersistentMaxAge
	}
	return min(int(exp.Sub(m.now()).Seconds()), PersistentMaxAge)
}

// recordPath maps a session ID to its file. IDs that are not UUIDs never
// touch the filesystem.
func (m *Manager) recordPath(id string) (string, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return filepath.Join(m.dir, id+recordExt), true
}

func (m *Manager) read(id string) (*storedSession, error) {
	p, ok := m.recordPath(id)
	if !ok {
		return nil, domain.ErrNoSession
	}
	raw, err := afero.ReadFile(m.fs, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var rec storedSession
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &rec, nil
}

func (m *Manager) write(id string, rec storedSession) error {
	p, ok := m.recordPath(id)
	if !ok {
		return fmt.Errorf("invalid session id %q", id)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.fs.MkdirAll(m.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := afero.WriteFile(m.fs, p, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (m *Manager) remove(id string) error {
	p, ok := m.recordPath(id)
	if !ok {
		return nil
	}
	if err := m.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// cookieSession adapts Manager to domain.SessionStore for a single request.
type cookieSession struct {
	m *Manager
	c echo.Context
}

func (s *cookieSession) Login(ctx context.Context, data json.RawMessage, keepLoggedIn bool) error {
	now := s.m.now()
	if exp, ok := TokenExpiry(TokenFrom(data)); ok && !exp.After(now) {
		return domain.ErrTokenExpired
	}

	sess, err := s.m.load(s.c)
	if err != nil {
		return err
	}

	maxAge := s.m.maxAge(data, keepLoggedIn)
	storedUntil := now.Add(BrowserSessionTTL)
	if keepLoggedIn {
		storedUntil = now.Add(time.Duration(maxAge) * time.Second)
	}

	id := uuid.NewString()
	if err := s.m.write(id, storedSession{
		Data:         data,
		KeepLoggedIn: keepLoggedIn,
		CreatedAt:    now.UTC(),
		StoredUntil:  storedUntil.UTC(),
	}); err != nil {
		return err
	}

	// A new login replaces whatever session the browser had before.
	if old, ok := sess.Values[valueID].(string); ok {
		_ = s.m.remove(old)
	}
	sess.Values = map[interface{}]interface{}{valueID: id}
	sess.Options = s.m.options(s.c, maxAge)

	if err := sess.Save(s.c.Request(), s.c.Response()); err != nil {
		_ = s.m.remove(id)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
