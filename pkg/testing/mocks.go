package testing

import (
	"github.com/stretchr/testify/mock"
)

// MockTokenStore is a mock implementation of auth.TokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Read() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockTokenStore) Write(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockTokenStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
