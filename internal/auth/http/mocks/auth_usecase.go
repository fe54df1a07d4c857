// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/taskman/internal/auth/domain"
	authUseCase "github.com/allisson/taskman/internal/auth/usecase"
	userDomain "github.com/allisson/taskman/internal/user/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase for testing.
type MockAuthUseCase struct {
	mock.Mock
}

// Register mocks the Register method of AuthUseCase.
func (m *MockAuthUseCase) Register(
	ctx context.Context,
	input authUseCase.RegisterInput,
) (*authUseCase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.RegisterOutput), args.Error(1)
}

// Authenticate mocks the Authenticate method of AuthUseCase.
func (m *MockAuthUseCase) Authenticate(ctx context.Context, email, password string) (*userDomain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Login mocks the Login method of AuthUseCase.
func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// IssueTokenPair mocks the IssueTokenPair method of AuthUseCase.
func (m *MockAuthUseCase) IssueTokenPair(
	ctx context.Context,
	email string,
	userID uuid.UUID,
) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, email, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// Refresh mocks the Refresh method of AuthUseCase.
func (m *MockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}
