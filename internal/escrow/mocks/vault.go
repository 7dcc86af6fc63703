package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/agora-courts/agora-courts/internal/escrow"
	"github.com/agora-courts/agora-courts/internal/store"
)

// MockVault implements escrow.Vault for testing
type MockVault struct {
	mock.Mock
}

func NewMockVault() *MockVault {
	return &MockVault{}
}

func (m *MockVault) Transfer(txn *store.Txn, from, to escrow.Account, amount uint64) error {
	args := m.Called(txn, from, to, amount)
	return args.Error(0)
}

func (m *MockVault) Balance(txn *store.Txn, account escrow.Account) (uint64, error) {
	args := m.Called(txn, account)
	return args.Get(0).(uint64), args.Error(1)
}
