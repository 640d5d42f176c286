package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jspark-dev/cinegrid/internal/adapter"
	"github.com/jspark-dev/cinegrid/internal/domain"
)

func TestGuardCheck(t *testing.T) {
	tests := []struct {
		name         string
		identity     *domain.Identity
		dest         domain.Route
		wantProceed  bool
		wantTarget   domain.Route
		wantReason   RedirectReason
		wantIntended domain.Route
	}{
		{
			name:        "public route while logged out",
			dest:        domain.RouteMovies,
			wantProceed: true,
		},
		{
			name:        "login route while logged out",
			dest:        domain.RouteLogin,
			wantProceed: true,
		},
		{
			name:         "admin route while logged out redirects to login",
			dest:         domain.RouteAdmin,
			wantProceed:  false,
			wantTarget:   domain.RouteLogin,
			wantReason:   ReasonLoginRequired,
			wantIntended: domain.RouteAdmin,
		},
		{
			name:        "admin route as plain member redirects home",
			identity:    &domain.Identity{ID: "jane", Role: "user"},
			dest:        domain.RouteAdmin,
			wantProceed: false,
			wantTarget:  domain.RouteHome,
			wantReason:  ReasonForbidden,
		},
		{
			name:        "admin route as admin proceeds",
			identity:    &domain.Identity{ID: "root", Role: domain.RoleAdmin},
			dest:        domain.RouteAdmin,
			wantProceed: true,
		},
		{
			name:        "public route as admin proceeds",
			identity:    &domain.Identity{ID: "root", Role: domain.RoleAdmin},
			dest:        domain.RouteProfile,
			wantProceed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(nil, adapter.NullLogger())
			if tt.identity != nil {
				session.Login(*tt.identity)
			}
			guard := NewGuard(session)

			d := guard.Check(tt.dest)
			assert.Equal(t, tt.wantProceed, d.Proceed)
			assert.Equal(t, tt.wantTarget, d.Target)
			assert.Equal(t, tt.wantReason, d.Reason)
			assert.Equal(t, tt.wantIntended, d.Intended)
		})
	}
}

func TestGuardReactsToSessionChange(t *testing.T) {
	session := NewSession(nil, adapter.NullLogger())
	guard := NewGuard(session)

	assert.False(t, guard.Check(domain.RouteAdmin).Proceed)

	session.Login(domain.Identity{ID: "root", Role: domain.RoleAdmin})
	assert.True(t, guard.Check(domain.RouteAdmin).Proceed)

	session.Logout()
	assert.False(t, guard.Check(domain.RouteAdmin).Proceed)
}
