package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daacooerp/erpclient/pkg/api"
	"github.com/daacooerp/erpclient/pkg/auth"
	"github.com/daacooerp/erpclient/pkg/errors"
	erptesting "github.com/daacooerp/erpclient/pkg/testing"
	"github.com/daacooerp/erpclient/pkg/transport"
)

func newSessionFixture(t *testing.T) (*erptesting.MockERPServer, *transport.Client, *UserStore) {
	t.Helper()
	server := erptesting.NewMockERPServer(t)
	tokens := auth.NewMemoryTokenStore()
	client := transport.NewClient(&transport.Config{BaseURL: server.URL, Tokens: tokens})
	users := NewUserStore(api.NewUserAPI(client), tokens)
	users.AttachTo(client)
	return server, client, users
}

func TestUserStoreLoginPersistsToken(t *testing.T) {
	server, client, users := newSessionFixture(t)
	server.StubSuccess(http.MethodPost, "/api/auth/login", map[string]string{"token": "abc123"})
	server.StubSuccess(http.MethodGet, "/ping", nil)

	require.NoError(t, users.Login(context.Background(), "admin", "secret"))
	assert.Equal(t, "Bearer abc123", users.Token())
	assert.Equal(t, "Bearer abc123", client.Tokens().Read())

	// Subsequent requests carry the credential.
	_, err := client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", server.LastRequest().Authorization)
}

func TestUserStoreLoginWithoutTokenFails(t *testing.T) {
	server, _, users := newSessionFixture(t)
	server.StubSuccess(http.MethodPost, "/api/auth/login", map[string]string{"greeting": "hi"})

	err := users.Login(context.Background(), "admin", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDomain))
	assert.Empty(t, users.Token())
}

func TestUserStoreProfileRequiresRoles(t *testing.T) {
	server, _, users := newSessionFixture(t)
	server.StubSuccess(http.MethodGet, "/api/auth/user", map[string]interface{}{
		"username": "admin",
		"roles":    []string{},
	})

	_, err := users.FetchProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDomain),
		"an empty role set is a hard failure, not a degraded success")
	assert.Empty(t, users.Roles())
}

func TestUserStoreProfilePopulatesSession(t *testing.T) {
	server, _, users := newSessionFixture(t)
	server.StubSuccess(http.MethodGet, "/api/auth/user", map[string]interface{}{
		"username": "admin",
		"avatar":   "https://cdn.example.com/a.png",
		"roles":    []string{"admin"},
	})

	profile, err := users.FetchProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", profile.DisplayName())
	assert.Equal(t, "admin", users.Name())
	assert.Equal(t, []string{"admin"}, users.Roles())
	assert.Equal(t, "https://cdn.example.com/a.png", users.Avatar())
}

func TestUserStoreLogoutResetsSession(t *testing.T) {
	server, client, users := newSessionFixture(t)
	server.StubSuccess(http.MethodPost, "/api/auth/login", map[string]string{"token": "abc123"})
	server.StubSuccess(http.MethodGet, "/api/auth/logout", nil)

	require.NoError(t, users.Login(context.Background(), "admin", "secret"))
	require.NoError(t, users.Logout(context.Background()))

	assert.Empty(t, users.Token())
	assert.Empty(t, users.Roles())
	assert.Empty(t, client.Tokens().Read())
}

func TestUnauthorizedResponseResetsSession(t *testing.T) {
	server := erptesting.NewMockERPServer(t)
	tokens := auth.NewMemoryTokenStore()
	require.NoError(t, tokens.Write("stale-token"))

	client := transport.NewClient(&transport.Config{BaseURL: server.URL, Tokens: tokens})
	users := NewUserStore(api.NewUserAPI(client), tokens)
	users.AttachTo(client)

	server.StubRaw(http.MethodGet, "/guarded", http.StatusUnauthorized, nil)
	server.StubSuccess(http.MethodGet, "/ping", nil)

	_, err := client.Get(context.Background(), "/guarded")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnauthenticated))
	assert.Empty(t, users.Token(), "the mirror drops its copy along with the store")

	// The next request must go out unauthenticated, not with the stale token.
	_, err = client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Empty(t, server.LastRequest().Authorization)
}

func sessionToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": float64(exp.Unix())})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestUserStoreSessionExpiry(t *testing.T) {
	tokens := auth.NewMemoryTokenStore()
	users := NewUserStore(api.NewUserAPI(transport.NewClient(nil)), tokens)

	assert.True(t, users.SessionExpiry().IsZero(), "no credential means no expiry")
	assert.False(t, users.SessionExpired())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, tokens.Write(sessionToken(t, exp)))
	assert.True(t, users.SessionExpiry().Equal(exp))
	assert.False(t, users.SessionExpired())

	require.NoError(t, tokens.Write(sessionToken(t, time.Now().Add(-time.Hour))))
	assert.True(t, users.SessionExpired())
}

func TestUserStoreFallbackMirror(t *testing.T) {
	server, client, _ := newSessionFixture(t)
	server.StubSuccess(http.MethodGet, "/ping", nil)

	// Replace the transport's primary store contents but leave the mirror
	// seeded: the fallback path serves the header.
	tokens := auth.NewMemoryTokenStore()
	require.NoError(t, tokens.Write("mirror-token"))
	mirror := NewUserStore(api.NewUserAPI(client), tokens)
	mirror.AttachTo(client)

	_, err := client.Get(context.Background(), "/ping")
	require.NoError(t, err)
	assert.Equal(t, "Bearer mirror-token", server.LastRequest().Authorization)
}
