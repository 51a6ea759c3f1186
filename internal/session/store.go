package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eventify/eventify-web/internal/api"
	"github.com/eventify/eventify-web/internal/auth"
)

// Client is the part of the API client the store drives: the default
// Authorization header and the identity lookup.
type Client interface {
	SetBearer(token string)
	ClearBearer()
	Me(ctx context.Context) (*auth.Identity, error)
}

// Store holds the authentication state of one browser session. The
// exported methods are the only way to change it.
type Store struct {
	slot   TokenSlot
	client Client

	once sync.Once

	mu            sync.RWMutex
	identity      *auth.Identity
	authenticated bool
	loading       bool
	// generation counts Login and Logout calls so that a restore racing with
	// either drops its result.
	generation uint64
}

// New creates a store in the loading state. Call Restore before the first
// authorization decision.
func New(slot TokenSlot, client Client) *Store {
	return &Store{
		slot:    slot,
		client:  client,
		loading: true,
	}
}

// Restore re-establishes the session from the persisted token. It runs at
// most once per store; later calls return immediately. Any failure leaves the
// store logged out.
func (s *Store) Restore(ctx context.Context) {
	s.once.Do(func() {
		s.restore(ctx)
	})
}

func (s *Store) restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, ok := s.slot.Token()
	if !ok || token == "" {
		return
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	s.client.SetBearer(token)
	identity, err := s.client.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		slog.Debug("session restore superseded")
		return
	}
	if err != nil {
		reason := restoreFailure(err)
		if reason == "unreachable" {
			slog.Warn("session restore failed, api unreachable, logging out", "error", err)
		} else {
			slog.Info("session restore failed, logging out", "reason", reason, "error", err)
		}
		s.logoutLocked()
		return
	}
	s.identity = identity
	s.authenticated = true
}

// MoveTo rebinds the store to slot, carrying over any persisted token and
// clearing the old slot. Used when the browser session id is reissued.
func (s *Store) MoveTo(slot TokenSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.slot.Token()
	if err := s.slot.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear old token slot: %w", err)
	}
	s.slot = slot
	if ok {
		if err := slot.SetToken(token); err != nil {
			return fmt.Errorf("failed to move token: %w", err)
		}
	}
	return nil
}

// restoreFailure names the kind of error the identity lookup failed with.
func restoreFailure(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "rejected"
	case errors.Is(err, api.ErrMalformedResponse), errors.Is(err, auth.ErrUnknownRole):
		return "malformed"
	case api.StatusOf(err) != 0:
		return "status"
	default:
		return "unreachable"
	}
}

// Login records a successful credential exchange.
func (s *Store) Login(identity auth.Identity, token string) {
	if token == "" {
		slog.Warn("login ignored: empty token", "user_id", identity.ID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.SetToken(token); err != nil {
		slog.Error("failed to persist token", "error", err, "user_id", identity.ID)
	}
	s.client.SetBearer(token)
	s.identity = &identity
	s.authenticated = true
	s.generation++
}

// Logout clears the identity and the persisted token. Calling it on a logged
// out store is harmless.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
	s.generation++
}

func (s *Store) logoutLocked() {
	if err := s.slot.ClearToken(); err != nil {
		slog.Error("failed to clear persisted token", "error", err)
	}
	s.client.ClearBearer()
	s.identity = nil
	s.authenticated = false
}

// UpdateIdentity replaces the identity of a logged in session, e.g. after a
// profile edit. It does nothing when nobody is logged in.
func (s *Store) UpdateIdentity(identity auth.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		return
	}
	s.identity = &identity
}

// State returns a snapshot of the session.
func (s *Store) State() auth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := auth.State{
		IsAuthenticated: s.authenticated,
		Loading:         s.loading,
	}
	if s.identity != nil {
		id := *s.identity
		state.Identity = &id
	}
	return state
}

// LogoutIfUnauthorized logs the session out when err says the API rejected
// the credential, and reports whether it did.
func (s *Store) LogoutIfUnauthorized(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	slog.Info("api rejected credential, logging out", "status", api.StatusOf(err))
	s.Logout()
	return true
}
