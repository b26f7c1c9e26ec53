package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// TxManager records WithTransaction calls and runs txFunc in place, so the
// repository expectations inside the transaction are still checked.
type TxManager struct {
	mock.Mock
}

func (m *TxManager) WithTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error {
	args := m.Called(ctx, txFunc)
	if err := args.Error(0); err != nil {
		return err
	}

	return txFunc(ctx)
}
