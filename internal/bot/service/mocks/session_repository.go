package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) GetActiveAccount(ctx context.Context, identity string) (int64, bool, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *SessionRepository) LogIn(ctx context.Context, identity string, accountID int64) error {
	args := m.Called(ctx, identity, accountID)
	return args.Error(0)
}

func (m *SessionRepository) LogOut(ctx context.Context, identity string, accountID int64) error {
	args := m.Called(ctx, identity, accountID)
	return args.Error(0)
}

type SessionCache struct {
	mock.Mock
}

func (m *SessionCache) GetSession(ctx context.Context, identity string) (int64, bool, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *SessionCache) SetSession(ctx context.Context, identity string, accountID int64) error {
	args := m.Called(ctx, identity, accountID)
	return args.Error(0)
}

func (m *SessionCache) DeleteSession(ctx context.Context, identity string) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}
