package auth

import (
	"os"
	"strings"
	"sync"

	"github.com/daacooerp/erpclient/pkg/errors"
)

const bearerPrefix = "Bearer "

// TokenStore is the sole owner of the persisted bearer credential. A stored
// token always carries exactly one "Bearer " prefix: never zero, never
// duplicated.
type TokenStore interface {
	// Read returns the stored token with its Bearer prefix, or "" if none
	// is stored.
	Read() string

	// Write normalizes the token to exactly one Bearer prefix and persists
	// it. Writing an empty value fails with INVALID_CREDENTIAL.
	Write(token string) error

	// Clear removes the persisted credential. Idempotent.
	Clear() error
}

// NormalizeBearer returns the token with exactly one Bearer prefix, or ""
// for an empty token.
func NormalizeBearer(token string) string {
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, bearerPrefix) {
		return token
	}
	return bearerPrefix + token
}

// StripBearer returns the raw token without its Bearer prefix.
func StripBearer(token string) string {
	return strings.TrimPrefix(token, bearerPrefix)
}

// MemoryTokenStore implements TokenStore in process memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore creates a new in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Read() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *MemoryTokenStore) Write(token string) error {
	if token == "" {
		return errors.ErrInvalidCredential
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = NormalizeBearer(token)
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// FileTokenStore implements TokenStore on a single file, the durable
// client-side analogue of the browser cookie under a fixed key.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore creates a token store persisting to path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Read() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	token := strings.TrimSpace(string(data))
	return NormalizeBearer(token)
}

func (f *FileTokenStore) Write(token string) error {
	if token == "" {
		return errors.ErrInvalidCredential
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path, []byte(NormalizeBearer(token)), 0o600); err != nil {
		return errors.Wrap(err, errors.ErrCodeClientConfig, "failed to persist credential")
	}
	return nil
}

func (f *FileTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrCodeClientConfig, "failed to clear credential")
	}
	return nil
}
