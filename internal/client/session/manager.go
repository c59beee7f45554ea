// Package session owns the client's authenticated identity: the token and
// user returned by login/registration, persisted locally so it survives a
// restart until logout.
//
// A Manager is constructed explicitly and handed to whatever needs the
// session; it satisfies api.TokenSource so an authenticated api.Client reads
// the token from it on every request.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/clouddrive/internal/client/api"
	"github.com/dmitrijs2005/clouddrive/internal/client/models"
	"github.com/dmitrijs2005/clouddrive/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/dmitrijs2005/clouddrive/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Authenticator is the part of the backend API the manager calls.
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (models.Session, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
}

// Result is the outcome of Register or Login. Message is meant to be shown
// to the user as is.
type Result struct {
	Success bool
	Message string
}

type Manager struct {
	auth  Authenticator
	store metadata.Repository
	log   logging.Logger

	mu      sync.RWMutex
	current *models.Session
}

func NewManager(auth Authenticator, store metadata.Repository, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{auth: auth, store: store, log: log.With("component", "session")}
}

// Restore loads the persisted session, if any. A user blob that does not
// parse is evicted together with the token and the manager stays logged out.
// Only storage failures are returned.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx, common.SessionTokenKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	blob, err := m.store.Get(ctx, common.SessionUserKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(blob, &user); err != nil || len(token) == 0 {
		m.log.Warn(ctx, "discarding corrupted session", "error", err)
		if err := m.store.Delete(ctx, common.SessionUserKey, common.SessionTokenKey); err != nil {
			return fmt.Errorf("evict corrupted session: %w", err)
		}
		return nil
	}

	m.mu.Lock()
	m.current = &models.Session{User: user, Token: string(token)}
	m.mu.Unlock()

	m.log.Debug(ctx, "session restored", "user", user.Email)
	return nil
}

// Register creates an account and starts a session for it.
func (m *Manager) Register(ctx context.Context, name, email, password string) Result {
	s, err := m.auth.Register(ctx, name, email, password)
	if err != nil {
		m.log.Info(ctx, "registration rejected", "error", err)
		return Result{Message: api.MessageOr(err, "Registration failed")}
	}
	return m.establish(ctx, s, "Registration failed")
}

// Login authenticates and starts a session.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	s, err := m.auth.Login(ctx, email, password)
	if err != nil {
		m.log.Info(ctx, "login rejected", "error", err)
		return Result{Message: api.MessageOr(err, "Login failed")}
	}
	return m.establish(ctx, s, "Login failed")
}

func (m *Manager) establish(ctx context.Context, s models.Session, fallback string) Result {
	if s.Token == "" {
		m.log.Warn(ctx, "backend returned no token")
		return Result{Message: fallback}
	}

	blob, err := json.Marshal(s.User)
	if err != nil {
		return Result{Message: fallback}
	}
	if err := m.store.SetMany(ctx, map[string][]byte{
		common.SessionTokenKey: []byte(s.Token),
		common.SessionUserKey:  blob,
	}); err != nil {
		m.log.Error(ctx, "persisting session failed", "error", err)
		return Result{Message: fallback}
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.log.Info(ctx, "session started", "user", s.User.Email)
	return Result{Success: true}
}

// Logout drops the session from memory and from storage. It is idempotent;
// memory is cleared even if the storage delete fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx, common.SessionUserKey, common.SessionTokenKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// User returns the signed-in user.
func (m *Manager) User() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.User{}, false
	}
	return m.current.User, true
}

// Token implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// ExpiresAt reads the exp claim of the session token. The signature is not
// verified and the result is informational only; the backend alone decides
// whether a token is still valid.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
