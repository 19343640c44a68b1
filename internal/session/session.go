// Package session keeps the authenticated session in the application state
// and mirrors it to the local session cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/state"
	"github.com/utafrali/storefront/internal/token"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Authenticator exchanges credentials for a user and a session token.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.User, string, error)
	Register(ctx context.Context, input domain.Registration) (domain.User, string, error)
}

// Manager owns the session slice of the application state. Every change goes
// through the store first and is then written to the cache.
type Manager struct {
	mu     sync.Mutex
	store  *state.Store
	cache  repository.SessionCache
	auth   Authenticator
	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a session manager.
func NewManager(store *state.Store, cache repository.SessionCache, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// SetAuthenticator sets the API used by Authenticate and Register. It is set
// after construction because the API client itself reads tokens from the
// manager.
func (m *Manager) SetAuthenticator(a Authenticator) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = a
}

// Current returns the session as of the latest dispatch.
func (m *Manager) Current() state.Session {
	return m.store.Snapshot().Session
}

// Login replaces the session and persists token and user.
func (m *Manager) Login(ctx context.Context, user domain.User, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.login(ctx, user, tok)
}

func (m *Manager) login(ctx context.Context, user domain.User, tok string) error {
	if tok == "" {
		return apperrors.InvalidInput("session token is required")
	}
	m.store.Dispatch(state.SessionStarted{User: user, Token: tok})

	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := m.cache.Set(ctx, repository.KeyToken, tok); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	if err := m.cache.Set(ctx, repository.KeyUser, string(blob)); err != nil {
		return fmt.Errorf("persist session user: %w", err)
	}

	m.logger.InfoContext(ctx, "session started",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)
	return nil
}

// Logout clears the session and the local cart and removes both cache keys.
// It is safe to call when no session exists.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logout(ctx)
}

func (m *Manager) logout(ctx context.Context) error {
	m.store.Dispatch(state.SessionCleared{})
	m.store.Dispatch(state.CartCleared{})

	if err := m.cache.Delete(ctx, repository.KeyToken, repository.KeyUser); err != nil {
		m.logger.WarnContext(ctx, "failed to clear session cache", slog.String("error", err.Error()))
		return fmt.Errorf("clear session cache: %w", err)
	}
	return nil
}

// Restore rebuilds the session from the cached token. A missing, malformed or
// expired token leaves the process logged out exactly as Logout would.
func (m *Manager) Restore(ctx context.Context) (state.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.cache.Get(ctx, repository.KeyToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			m.logger.WarnContext(ctx, "failed to read cached token", slog.String("error", err.Error()))
		}
		return state.Session{}, m.logout(ctx)
	}

	claims, err := token.Decode(tok)
	if err != nil {
		m.logger.DebugContext(ctx, "discarding undecodable session token", slog.String("error", err.Error()))
		return state.Session{}, m.logout(ctx)
	}
	if token.IsExpired(tok, m.now()) {
		m.logger.InfoContext(ctx, "cached session expired", slog.String("user_id", claims.ID))
		return state.Session{}, m.logout(ctx)
	}

	user := claims.User()
	m.fillFromCache(ctx, &user)
	m.store.Dispatch(state.SessionStarted{User: user, Token: tok})

	m.logger.InfoContext(ctx, "session restored", slog.String("user_id", user.ID))
	return m.store.Snapshot().Session, nil
}

// fillFromCache completes display fields the token does not carry from the
// cached user blob of the same user.
func (m *Manager) fillFromCache(ctx context.Context, user *domain.User) {
	raw, err := m.cache.Get(ctx, repository.KeyUser)
	if err != nil {
		return
	}
	var cached domain.User
	if err := json.Unmarshal([]byte(raw), &cached); err != nil || cached.ID != user.ID {
		return
	}
	if user.Name == "" {
		user.Name = cached.Name
	}
	if user.Email == "" {
		user.Email = cached.Email
	}
	if user.Role == "" {
		user.Role = cached.Role
	}
	if user.StoreID == "" {
		user.StoreID = cached.StoreID
	}
}

// UpdateRole changes only the role of the current user and persists the user
// blob. Without a session it does nothing.
func (m *Manager) UpdateRole(ctx context.Context, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store.Snapshot().Session.User == nil {
		return nil
	}
	s := m.store.Dispatch(state.RoleUpdated{Role: role})

	blob, err := json.Marshal(s.Session.User)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := m.cache.Set(ctx, repository.KeyUser, string(blob)); err != nil {
		return fmt.Errorf("persist session user: %w", err)
	}
	return nil
}

// Token returns the current session token for an authenticated request. A
// missing token, or one that has expired, yields apperrors.ErrNoToken; the
// expired case resets the session first.
func (m *Manager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tok := m.store.Snapshot().Session.Token
	if tok == "" {
		return "", apperrors.NoToken()
	}
	if token.IsExpired(tok, m.now()) {
		m.logger.InfoContext(ctx, "session token expired, resetting session")
		if err := m.logout(ctx); err != nil {
			m.logger.WarnContext(ctx, "session reset incomplete", slog.String("error", err.Error()))
		}
		return "", apperrors.NoToken()
	}
	return tok, nil
}

// Authenticate logs in against the API and starts the returned session.
func (m *Manager) Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.auth == nil {
		return domain.User{}, fmt.Errorf("authenticate: no authenticator configured")
	}
	user, tok, err := m.auth.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}
	return m.start(ctx, user, tok)
}

// Register creates an account through the API and starts the returned session.
func (m *Manager) Register(ctx context.Context, input domain.Registration) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.auth == nil {
		return domain.User{}, fmt.Errorf("register: no authenticator configured")
	}
	user, tok, err := m.auth.Register(ctx, input)
	if err != nil {
		return domain.User{}, err
	}
	return m.start(ctx, user, tok)
}

// start fills fields the response left empty from the token claims.
func (m *Manager) start(ctx context.Context, user domain.User, tok string) (domain.User, error) {
	if claims, err := token.Decode(tok); err == nil {
		fromClaims := claims.User()
		if user.ID == "" {
			user.ID = fromClaims.ID
		}
		if user.Role == "" {
			user.Role = fromClaims.Role
		}
		if user.StoreID == "" {
			user.StoreID = fromClaims.StoreID
		}
		if user.Name == "" {
			user.Name = fromClaims.Name
		}
		if user.Email == "" {
			user.Email = fromClaims.Email
		}
	}
	if err := m.login(ctx, user, tok); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
