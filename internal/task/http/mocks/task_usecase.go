// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	taskDomain "github.com/allisson/taskman/internal/task/domain"
	taskUseCase "github.com/allisson/taskman/internal/task/usecase"
)

// MockTaskUseCase is a mock implementation of TaskUseCase for testing.
type MockTaskUseCase struct {
	mock.Mock
}

// Create mocks the Create method of TaskUseCase.
func (m *MockTaskUseCase) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input taskUseCase.CreateTaskInput,
) (*taskDomain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskDomain.Task), args.Error(1)
}

// Get mocks the Get method of TaskUseCase.
func (m *MockTaskUseCase) Get(ctx context.Context, ownerID, id uuid.UUID) (*taskDomain.Task, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskDomain.Task), args.Error(1)
}

// List mocks the List method of TaskUseCase.
func (m *MockTaskUseCase) List(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

// Search mocks the Search method of TaskUseCase.
func (m *MockTaskUseCase) Search(
	ctx context.Context,
	ownerID uuid.UUID,
	q string,
	offset, limit int,
) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, ownerID, q, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

// Update mocks the Update method of TaskUseCase.
func (m *MockTaskUseCase) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	input taskUseCase.UpdateTaskInput,
) (*taskDomain.Task, error) {
	args := m.Called(ctx, ownerID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskDomain.Task), args.Error(1)
}

// Delete mocks the Delete method of TaskUseCase.
func (m *MockTaskUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
