package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

// Credentials authenticate a member against the backend session endpoint.
type Credentials struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// SignupRequest registers a new member.
type SignupRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Birth    string `json:"birth"`
}

// Login establishes a backend session; the session cookie lands in the
// client's jar. Returns the authenticated identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (*domain.Identity, error) {
	body, err := c.do(ctx, http.MethodPost, "/member/login", nil, creds)
	if err != nil {
		return nil, err
	}
	var identity domain.Identity
	if err := decode(body, &identity); err != nil {
		return nil, err
	}
	if identity.ID == "" {
		identity.ID = creds.ID
	}
	return &identity, nil
}

// Logout tears down the backend session. Best-effort: the caller clears
// local session state regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/member/logout", nil, nil)
	return err
}

// Signup registers a new member account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/member/signup", nil, req)
	return err
}

// ListMembers fetches every member record (admin grid).
func (c *Client) ListMembers(ctx context.Context) ([]domain.Member, error) {
	body, err := c.do(ctx, http.MethodGet, "/member/all", nil, nil)
	if err != nil {
		return nil, err
	}
	var members []domain.Member
	if err := decode(body, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CurrentMember fetches the session member's own profile.
func (c *Client) CurrentMember(ctx context.Context) (*domain.Member, error) {
	body, err := c.do(ctx, http.MethodGet, "/member/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var member domain.Member
	if err := decode(body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember saves profile changes and returns the updated record when
// the backend echoes one.
func (c *Client) UpdateMember(ctx context.Context, member domain.Member) (*domain.Member, error) {
	body, err := c.do(ctx, http.MethodPost, "/member/update", nil, member)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Member *domain.Member `json:"member"`
	}
	if err := decode(body, &resp); err != nil {
		return nil, err
	}
	return resp.Member, nil
}

// ChangePassword swaps the session member's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	payload := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	_, err := c.do(ctx, http.MethodPost, "/member/change-password", nil, payload)
	return err
}

// DeleteMember removes a member account. The password confirms intent for
// self-deletion.
func (c *Client) DeleteMember(ctx context.Context, id, password string) error {
	payload := map[string]string{"password": password}
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/member/delete/%s", id), nil, payload)
	return err
}
