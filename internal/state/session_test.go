package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jspark-dev/cinegrid/internal/adapter"
	"github.com/jspark-dev/cinegrid/internal/domain"
)

func TestSessionDefaultsLoggedOut(t *testing.T) {
	s := NewSession(newFakeKV(), adapter.NullLogger())

	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Identity())
	assert.Empty(t, s.MemberID())
	assert.False(t, s.IsAdmin())
}

func TestSessionLoginLogout(t *testing.T) {
	kv := newFakeKV()
	s := NewSession(kv, adapter.NullLogger())

	s.Login(domain.Identity{ID: "jane", Role: "user"})
	assert.True(t, s.Authenticated())
	assert.Equal(t, "jane", s.MemberID())
	assert.False(t, s.IsAdmin())

	// Logging in again overwrites the identity.
	s.Login(domain.Identity{ID: "root", Role: domain.RoleAdmin})
	assert.Equal(t, "root", s.MemberID())
	assert.True(t, s.IsAdmin())

	s.Logout()
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.Identity())
	assert.False(t, s.IsAdmin())
}

func TestSessionRestoresPersistedIdentity(t *testing.T) {
	kv := newFakeKV()
	first := NewSession(kv, adapter.NullLogger())
	first.Login(domain.Identity{ID: "jane", Role: domain.RoleAdmin})

	// A fresh session over the same storage starts logged in.
	second := NewSession(kv, adapter.NullLogger())
	assert.True(t, second.Authenticated())
	assert.Equal(t, "jane", second.MemberID())
	assert.True(t, second.IsAdmin())
}

func TestSessionLogoutClearsPersistedIdentity(t *testing.T) {
	kv := newFakeKV()
	first := NewSession(kv, adapter.NullLogger())
	first.Login(domain.Identity{ID: "jane"})
	first.Logout()

	second := NewSession(kv, adapter.NullLogger())
	assert.False(t, second.Authenticated())
}

func TestSessionIdentityReturnsCopy(t *testing.T) {
	s := NewSession(nil, adapter.NullLogger())
	s.Login(domain.Identity{ID: "jane"})

	id := s.Identity()
	require.NotNil(t, id)
	id.ID = "mutated"

	assert.Equal(t, "jane", s.MemberID())
}

func TestSessionWithoutStorage(t *testing.T) {
	s := NewSession(nil, adapter.NullLogger())
	s.Login(domain.Identity{ID: "jane"})
	assert.True(t, s.Authenticated())
	s.Logout()
	assert.False(t, s.Authenticated())
}
