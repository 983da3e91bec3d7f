package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, username, passwordHash, fullname string) (User, error) {
	args := m.Called(ctx, username, passwordHash, fullname)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockStore) FindUserByUsername(ctx context.Context, username string) (User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockStore) FindUserByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}
