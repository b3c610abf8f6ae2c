package mocks

import (
	"context"

	"device-inventory/core/router"

	"github.com/stretchr/testify/mock"
)

// Session is a mock implementation of router.Session
type Session struct {
	mock.Mock
}

func (m *Session) Query(ctx context.Context, path string, filter router.Filter) ([]router.Row, error) {
	args := m.Called(ctx, path, filter)
	if rows, ok := args.Get(0).([]router.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Session) Close() error {
	args := m.Called()
	return args.Error(0)
}
