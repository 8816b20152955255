package api

import (
	"context"
	"fmt"

	"github.com/daacooerp/erpclient/pkg/auth"
	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// UserAPI maps session and user-management operations onto transport
// requests.
type UserAPI struct {
	c *transport.Client
}

// NewUserAPI creates a user API module
func NewUserAPI(c *transport.Client) *UserAPI {
	return &UserAPI{c: c}
}

// Login authenticates with a username and cleartext password. The password
// is hashed before it is placed in the payload.
func (a *UserAPI) Login(ctx context.Context, username, password string) (*models.Envelope, error) {
	payload := &models.LoginRequest{
		Username: username,
		Password: auth.HashPassword(password),
	}
	if err := models.Validate(payload); err != nil {
		return nil, err
	}
	return a.c.Post(ctx, "/api/auth/login", payload)
}

// GetInfo fetches the authenticated user's profile.
func (a *UserAPI) GetInfo(ctx context.Context) (*models.Envelope, error) {
	return a.c.Get(ctx, "/api/auth/user")
}

// Logout ends the server-side session.
func (a *UserAPI) Logout(ctx context.Context) (*models.Envelope, error) {
	return a.c.Get(ctx, "/api/auth/logout")
}

// ListUsers fetches the user account list.
func (a *UserAPI) ListUsers(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/api/users", pageValues(params))
}

// CreateUser creates a user account.
func (a *UserAPI) CreateUser(ctx context.Context, user *models.User) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/users", user)
}

// UpdateUser updates a user account.
func (a *UserAPI) UpdateUser(ctx context.Context, id int64, user *models.User) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/api/users/%d", id), user)
}

// DeleteUser deletes a user account.
func (a *UserAPI) DeleteUser(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/api/users/%d", id))
}
