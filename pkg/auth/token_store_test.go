package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daacooerp/erpclient/pkg/errors"
)

func TestNormalizeBearer(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"raw token gains prefix", "abc123", "Bearer abc123"},
		{"prefixed token unchanged", "Bearer abc123", "Bearer abc123"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBearer(tt.token))
		})
	}
}

func TestMemoryTokenStoreRoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()
	assert.Empty(t, store.Read())

	require.NoError(t, store.Write("abc123"))
	assert.Equal(t, "Bearer abc123", store.Read())

	// Writing an already-prefixed token must not double the prefix.
	require.NoError(t, store.Write("Bearer abc123"))
	assert.Equal(t, "Bearer abc123", store.Read())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Read())
	require.NoError(t, store.Clear(), "clear is idempotent")
}

func TestMemoryTokenStoreRejectsEmpty(t *testing.T) {
	store := NewMemoryTokenStore()

	err := store.Write("")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredential))
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	assert.Empty(t, store.Read(), "missing file reads as empty")

	require.NoError(t, store.Write("abc123"))
	assert.Equal(t, "Bearer abc123", store.Read())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", string(data), "file persists the prefixed form")

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Read())
	require.NoError(t, store.Clear(), "clearing a cleared store succeeds")
}

func TestFileTokenStoreRejectsEmpty(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))

	err := store.Write("")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredential))
}

func TestFileTokenStoreNormalizesLegacyContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("rawtoken\n"), 0o600))

	store := NewFileTokenStore(path)
	assert.Equal(t, "Bearer rawtoken", store.Read())
}

func TestHashPassword(t *testing.T) {
	// MD5 hex digest, matching the login wire contract.
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", HashPassword("password"))
	assert.Len(t, HashPassword("anything"), 32)
}
