package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/accountd/internal/core/domain"
)

// MockUserStore is an in-memory implementation of UserStore for testing
type MockUserStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]*domain.User
	byName  map[string]*domain.User

	// CreateErr, when set, is returned by Create to simulate store failures
	CreateErr error
	// UpdateErr, when set, is returned by UpdateRefreshTokenHash
	UpdateErr error
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		byName:  make(map[string]*domain.User),
	}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return domain.ErrAlreadyExists
	}
	if _, ok := m.byName[user.Name]; ok {
		return domain.ErrAlreadyExists
	}
	if user.Name == "" || user.Email == "" || user.PasswordHash == "" {
		return domain.ErrInvalidInput
	}

	u := *user
	m.users[u.ID] = &u
	m.byEmail[u.Email] = &u
	m.byName[u.Name] = &u
	return nil
}

func (m *MockUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *MockUserStore) UpdateRefreshTokenHash(ctx context.Context, id string, hash *string) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if hash == nil {
		user.RefreshTokenHash = nil
		return nil
	}
	h := *hash
	user.RefreshTokenHash = &h
	return nil
}

// Helper methods for testing

// Seed inserts a user directly, bypassing constraint checks
func (m *MockUserStore) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.users[u.ID] = &u
	m.byEmail[u.Email] = &u
	m.byName[u.Name] = &u
}

// StoredRefreshHash returns the currently persisted refresh-token hash
func (m *MockUserStore) StoredRefreshHash(id string) *string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok || user.RefreshTokenHash == nil {
		return nil
	}
	h := *user.RefreshTokenHash
	return &h
}

func (m *MockUserStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
