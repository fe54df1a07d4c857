package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/metrics"
	"github.com/allisson/taskman/internal/task/domain"
)

// taskUseCaseWithMetrics decorates TaskUseCase with metrics instrumentation.
type taskUseCaseWithMetrics struct {
	next    TaskUseCase
	metrics metrics.BusinessMetrics
}

// NewTaskUseCaseWithMetrics wraps a TaskUseCase with metrics recording.
func NewTaskUseCaseWithMetrics(useCase TaskUseCase, m metrics.BusinessMetrics) TaskUseCase {
	return &taskUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *taskUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	t.metrics.RecordOperation(ctx, "tasks", operation, status)
	t.metrics.RecordDuration(ctx, "tasks", operation, time.Since(start), status)
}

// Create records metrics for task creation operations.
func (t *taskUseCaseWithMetrics) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.Create(ctx, ownerID, input)
	t.record(ctx, "task_create", start, err)
	return task, err
}

// Get records metrics for task retrieval operations.
func (t *taskUseCaseWithMetrics) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.Get(ctx, ownerID, id)
	t.record(ctx, "task_get", start, err)
	return task, err
}

// List records metrics for task listing operations.
func (t *taskUseCaseWithMetrics) List(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.Task, error) {
	start := time.Now()
	tasks, err := t.next.List(ctx, ownerID, offset, limit)
	t.record(ctx, "task_list", start, err)
	return tasks, err
}

// Search records metrics for task search operations.
func (t *taskUseCaseWithMetrics) Search(
	ctx context.Context,
	ownerID uuid.UUID,
	q string,
	offset, limit int,
) ([]*domain.Task, error) {
	start := time.Now()
	tasks, err := t.next.Search(ctx, ownerID, q, offset, limit)
	t.record(ctx, "task_search", start, err)
	return tasks, err
}

// Update records metrics for task update operations.
func (t *taskUseCaseWithMetrics) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	start := time.Now()
	task, err := t.next.Update(ctx, ownerID, id, input)
	t.record(ctx, "task_update", start, err)
	return task, err
}

// Delete records metrics for task deletion operations.
func (t *taskUseCaseWithMetrics) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	start := time.Now()
	err := t.next.Delete(ctx, ownerID, id)
	t.record(ctx, "task_delete", start, err)
	return err
}
