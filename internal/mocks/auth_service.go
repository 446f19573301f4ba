package mocks

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockAuthService é um mock para o serviço de autenticação
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	args := m.Called(ctx, tokenString)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.User), args.Error(1)
}
