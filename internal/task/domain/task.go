// Package domain defines the core task domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/errors"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses.
const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task represents a unit of work owned by a user. Titles are unique per
// owner and every operation on a task is scoped to its owner.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Priority    int
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for task operations.
var (
	// ErrTaskNotFound indicates the task does not exist or belongs to another
	// owner. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.Wrap(errors.ErrNotFound, "task not found")

	// ErrTaskAlreadyExists indicates the owner already has a task with the same title.
	ErrTaskAlreadyExists = errors.Wrap(errors.ErrConflict, "task with this title already exists")

	// ErrTitleRequired indicates the title field is required.
	ErrTitleRequired = errors.Wrap(errors.ErrInvalidInput, "title is required")

	// ErrInvalidPriority indicates the priority must be a positive integer.
	ErrInvalidPriority = errors.Wrap(errors.ErrInvalidInput, "priority must be greater than zero")

	// ErrInvalidStatus indicates the status is not a known lifecycle state.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid task status")
)
