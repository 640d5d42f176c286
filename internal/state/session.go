package state

import (
	"log/slog"
	"sync"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

// Session holds the current authentication status and identity. Two states:
// logged out (identity nil) and logged in. Constructed once at startup; a
// persisted identity is restored before any navigation guard runs.
type Session struct {
	mu            sync.RWMutex
	authenticated bool
	identity      *domain.Identity

	kv     domain.KVStore // nil disables persistence
	logger *slog.Logger
}

// NewSession creates the session, restoring any persisted identity from kv.
func NewSession(kv domain.KVStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{kv: kv, logger: logger}

	if kv != nil {
		var identity domain.Identity
		if kv.Get(domain.KeySessionIdentity, &identity) && identity.ID != "" {
			s.authenticated = true
			s.identity = &identity
			logger.Info("restored session", "member", identity.ID)
		}
	}
	return s
}

// Login records the identity as the authenticated member. No validation
// happens here; the caller must have authenticated against the backend
// first. Logging in over an existing session overwrites the identity.
func (s *Session) Login(identity domain.Identity) {
	s.mu.Lock()
	s.authenticated = true
	s.identity = &identity
	s.mu.Unlock()

	if s.kv != nil {
		// Persistence is best-effort; a storage failure never blocks login.
		if err := s.kv.Set(domain.KeySessionIdentity, identity); err != nil {
			s.logger.Warn("failed to persist session", "error", err)
		}
	}
	s.logger.Info("logged in", "member", identity.ID, "role", identity.Role)
}

// Logout resets to the logged-out default and clears the persisted record.
func (s *Session) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.identity = nil
	s.mu.Unlock()

	if s.kv != nil {
		s.kv.Delete(domain.KeySessionIdentity)
	}
	s.logger.Info("logged out")
}

// Authenticated reports whether a member is logged in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Identity returns the current identity, or nil when logged out.
func (s *Session) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// MemberID returns the logged-in member's id, or "" when logged out.
func (s *Session) MemberID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.ID
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.IsAdmin()
}
