// Package usecase implements the task business logic. Every operation is
// scoped to the owner resolved from the request identity.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/allisson/taskman/internal/errors"
	"github.com/allisson/taskman/internal/task/domain"
	appValidation "github.com/allisson/taskman/internal/validation"
)

// CreateTaskInput contains the input data for task creation
type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Status      string `json:"status"`
}

// UpdateTaskInput contains the mutable task fields for partial updates.
// Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	Status      *string `json:"status"`
}

// TaskUseCase defines the interface for task business logic operations
type TaskUseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error)
	Search(ctx context.Context, ownerID uuid.UUID, q string, offset, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// TaskRepository interface defines task repository operations
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error)
	Search(ctx context.Context, ownerID uuid.UUID, q string, offset, limit int) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// taskUseCase handles task-related business logic
type taskUseCase struct {
	taskRepo TaskRepository
}

// NewTaskUseCase creates a new TaskUseCase
func NewTaskUseCase(taskRepo TaskRepository) TaskUseCase {
	return &taskUseCase{
		taskRepo: taskRepo,
	}
}

// validateCreateTaskInput validates the creation input using jellydator/validation
func (uc *taskUseCase) validateCreateTaskInput(input CreateTaskInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 10000).Error("description must be at most 10000 characters"),
		),
		validation.Field(&input.Priority,
			validation.Min(1).Error("priority must be greater than zero"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.Status != "" && !domain.TaskStatus(input.Status).IsValid() {
		return domain.ErrInvalidStatus
	}
	return nil
}

// Create creates a new task for the owner. Status defaults to pending and
// priority to 1 when not provided.
func (uc *taskUseCase) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	if input.Priority == 0 {
		input.Priority = 1
	}
	if err := uc.validateCreateTaskInput(input); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if input.Status != "" {
		status = domain.TaskStatus(input.Status)
	}

	task := &domain.Task{
		ID:          uuid.Must(uuid.NewV7()),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Priority:    input.Priority,
		Status:      status,
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Get retrieves a single task owned by the caller
func (uc *taskUseCase) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return uc.taskRepo.GetByID(ctx, ownerID, id)
}

// List retrieves the caller's tasks with pagination
func (uc *taskUseCase) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error) {
	return uc.taskRepo.List(ctx, ownerID, offset, limit)
}

// Search retrieves the caller's tasks matching the title substring
func (uc *taskUseCase) Search(
	ctx context.Context,
	ownerID uuid.UUID,
	q string,
	offset, limit int,
) ([]*domain.Task, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return uc.taskRepo.List(ctx, ownerID, offset, limit)
	}
	return uc.taskRepo.Search(ctx, ownerID, q, offset, limit)
}

// Update applies a partial update to a task owned by the caller
func (uc *taskUseCase) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		if len(title) > 255 {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "title must be at most 255 characters")
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if *input.Priority <= 0 {
			return nil, domain.ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		status := domain.TaskStatus(*input.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatus
		}
		task.Status = status
	}

	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes a task owned by the caller
func (uc *taskUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return uc.taskRepo.Delete(ctx, ownerID, id)
}
