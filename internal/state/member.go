package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jspark-dev/cinegrid/internal/api"
	"github.com/jspark-dev/cinegrid/internal/domain"
)

// MemberAPI is the slice of the backend the member store consumes.
// *api.Client satisfies it.
type MemberAPI interface {
	CurrentMember(ctx context.Context) (*domain.Member, error)
	UpdateMember(ctx context.Context, member domain.Member) (*domain.Member, error)
	ChangePassword(ctx context.Context, current, next string) error
	DeleteMember(ctx context.Context, id, password string) error
}

// MemberStore holds the session member's profile with the same
// loading/error shape as the collection stores, just over a single record.
type MemberStore struct {
	api    MemberAPI
	logger *slog.Logger

	mu      sync.Mutex
	profile *domain.Member
	loading bool
	err     *domain.ErrorInfo

	kv domain.KVStore // nil disables persistence
}

// NewMemberStore creates the member store, restoring a persisted profile.
func NewMemberStore(memberAPI MemberAPI, kv domain.KVStore, logger *slog.Logger) *MemberStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MemberStore{api: memberAPI, kv: kv, logger: logger}

	if kv != nil {
		var profile domain.Member
		if kv.Get(domain.KeyMemberProfile, &profile) && profile.ID != "" {
			s.profile = &profile
		}
	}
	return s
}

// FetchProfile loads the session member's profile from the backend.
func (s *MemberStore) FetchProfile(ctx context.Context) error {
	s.begin()
	profile, err := s.api.CurrentMember(ctx)
	if err == nil {
		s.setProfile(profile)
	}
	return s.finish(err)
}

// UpdateProfile saves profile changes. When the backend does not echo the
// updated record, the profile is refetched so local state stays current.
func (s *MemberStore) UpdateProfile(ctx context.Context, member domain.Member) error {
	s.begin()
	updated, err := s.api.UpdateMember(ctx, member)
	if err != nil {
		return s.finish(err)
	}
	if updated != nil {
		s.setProfile(updated)
		return s.finish(nil)
	}
	s.finish(nil)
	return s.FetchProfile(ctx)
}

// ChangePassword swaps the member's password.
func (s *MemberStore) ChangePassword(ctx context.Context, current, next string) error {
	s.begin()
	return s.finish(s.api.ChangePassword(ctx, current, next))
}

// DeleteAccount removes the member's own account, confirmed by password.
// Requires a loaded profile; on success all member state is reset.
func (s *MemberStore) DeleteAccount(ctx context.Context, password string) error {
	s.mu.Lock()
	var id string
	if s.profile != nil {
		id = s.profile.ID
	}
	if id == "" {
		s.err = api.UserMessage(domain.ErrNotLoggedIn)
		s.mu.Unlock()
		return domain.ErrNotLoggedIn
	}
	s.mu.Unlock()

	s.begin()
	if err := s.api.DeleteMember(ctx, id, password); err != nil {
		return s.finish(err)
	}
	s.finish(nil)
	s.Reset()
	return nil
}

// ClearError dismisses the last error.
func (s *MemberStore) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

// Reset drops all member state and the persisted profile, e.g. on logout.
func (s *MemberStore) Reset() {
	s.mu.Lock()
	s.profile = nil
	s.err = nil
	s.loading = false
	s.mu.Unlock()

	if s.kv != nil {
		s.kv.Delete(domain.KeyMemberProfile)
	}
}

// Profile returns the loaded profile, or nil.
func (s *MemberStore) Profile() *domain.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Loading reports whether a member action is in flight.
func (s *MemberStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last error, or nil.
func (s *MemberStore) Err() *domain.ErrorInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *MemberStore) setProfile(profile *domain.Member) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	if s.kv != nil && profile != nil {
		if err := s.kv.Set(domain.KeyMemberProfile, profile); err != nil {
			s.logger.Warn("failed to persist profile", "error", err)
		}
	}
}

func (s *MemberStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
}

func (s *MemberStore) finish(err error) error {
	s.mu.Lock()
	if err != nil {
		s.err = api.UserMessage(err)
		s.logger.Error("member action failed", "error", err)
	}
	s.loading = false
	s.mu.Unlock()
	return err
}
