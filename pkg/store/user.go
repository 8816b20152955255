package store

import (
	"context"
	"sync"
	"time"

	"github.com/daacooerp/erpclient/pkg/auth"
	"github.com/daacooerp/erpclient/pkg/errors"
	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// SessionAPI is the slice of the user module the session store consumes.
type SessionAPI interface {
	Login(ctx context.Context, username, password string) (*models.Envelope, error)
	GetInfo(ctx context.Context) (*models.Envelope, error)
	Logout(ctx context.Context) (*models.Envelope, error)
}

// UserStore owns the session: the credential, mirrored in memory next to the
// durable store, plus the profile fields from the last successful fetch.
type UserStore struct {
	api    SessionAPI
	tokens auth.TokenStore

	mu     sync.RWMutex
	token  string
	name   string
	avatar string
	roles  []string
}

// NewUserStore creates a session store. The in-memory token mirror is seeded
// from the credential store so a persisted session survives construction.
func NewUserStore(sessionAPI SessionAPI, tokens auth.TokenStore) *UserStore {
	return &UserStore{
		api:    sessionAPI,
		tokens: tokens,
		token:  tokens.Read(),
	}
}

// AttachTo registers the store's token mirror as the transport's fallback
// credential source, and resets the session whenever the transport sees a
// 401. Without the reset the mirror would keep serving the rejected token.
func (s *UserStore) AttachTo(c *transport.Client) {
	c.SetFallbackToken(s.Token)
	c.SetUnauthenticatedHook(func() {
		_ = s.ResetToken()
	})
}

type loginData struct {
	Token string `json:"token"`
}

// Login authenticates and persists the returned credential in both the store
// and the mirror.
func (s *UserStore) Login(ctx context.Context, username, password string) error {
	env, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	var data loginData
	if err := env.DecodeData(&data); err != nil {
		return errors.Wrap(err, errors.ErrCodeDomain, "malformed login response")
	}
	if data.Token == "" {
		return errors.New(errors.ErrCodeDomain, "login response carried no token")
	}

	if err := s.tokens.Write(data.Token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = s.tokens.Read()
	s.mu.Unlock()
	return nil
}

// FetchProfile loads the authenticated user's profile. A profile without
// roles is a hard failure: downstream permission checks cannot run on an
// empty role set.
func (s *UserStore) FetchProfile(ctx context.Context) (*models.UserProfile, error) {
	env, err := s.api.GetInfo(ctx)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := env.DecodeData(&profile); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDomain, "malformed profile response")
	}
	if len(profile.Roles) == 0 {
		return nil, errors.New(errors.ErrCodeDomain, "profile roles must be a non-empty array")
	}

	s.mu.Lock()
	s.name = profile.DisplayName()
	s.avatar = profile.Avatar
	s.roles = profile.Roles
	s.mu.Unlock()
	return &profile, nil
}

// Logout ends the session. The server-side cleanup is best effort; the local
// session always resets.
func (s *UserStore) Logout(ctx context.Context) error {
	_, _ = s.api.Logout(ctx)
	return s.ResetToken()
}

// ResetToken drops the credential and all cached profile state.
func (s *UserStore) ResetToken() error {
	err := s.tokens.Clear()
	s.mu.Lock()
	s.token = ""
	s.name = ""
	s.avatar = ""
	s.roles = nil
	s.mu.Unlock()
	return err
}

// Token returns the in-memory credential mirror, refreshed from the store
// when the mirror is empty.
func (s *UserStore) Token() string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token
	}
	return s.tokens.Read()
}

// SessionExpiry returns the credential's expiration time, or the zero time
// when no credential is held or it carries no exp claim.
func (s *UserStore) SessionExpiry() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}
	expiry, err := auth.TokenExpiry(token)
	if err != nil {
		return time.Time{}
	}
	return expiry
}

// SessionExpired reports whether the held credential has lapsed.
func (s *UserStore) SessionExpired() bool {
	token := s.Token()
	return token != "" && auth.IsExpired(token)
}

// Name returns the display name from the last profile fetch.
func (s *UserStore) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Avatar returns the avatar URL from the last profile fetch.
func (s *UserStore) Avatar() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.avatar
}

// Roles returns the role set from the last profile fetch.
func (s *UserStore) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roles
}
