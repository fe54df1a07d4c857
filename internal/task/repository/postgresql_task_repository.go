// Package repository provides data persistence implementations for task entities.
// Repositories support both PostgreSQL and MySQL; every query is scoped to the
// task owner so a task outside the caller's ownership is indistinguishable
// from one that does not exist.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/taskman/internal/database"
	apperrors "github.com/allisson/taskman/internal/errors"
	"github.com/allisson/taskman/internal/task/domain"
)

// PostgreSQLTaskRepository handles task persistence for PostgreSQL
type PostgreSQLTaskRepository struct {
	db *sql.DB
}

// NewPostgreSQLTaskRepository creates a new PostgreSQLTaskRepository
func NewPostgreSQLTaskRepository(db *sql.DB) *PostgreSQLTaskRepository {
	return &PostgreSQLTaskRepository{
		db: db,
	}
}

// Create inserts a new task
func (r *PostgreSQLTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tasks (id, owner_id, title, description, priority, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(
		ctx,
		query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate title per owner)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrTaskAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create task")
	}
	return nil
}

// GetByID retrieves a task by ID scoped to its owner
func (r *PostgreSQLTaskRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, priority, status, created_at, updated_at
			  FROM tasks WHERE id = $1 AND owner_id = $2`

	err := querier.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get task by id")
	}

	return &task, nil
}

// List retrieves the owner's tasks ordered by creation time, newest first
func (r *PostgreSQLTaskRepository) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, priority, status, created_at, updated_at
			  FROM tasks WHERE owner_id = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tasks")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanTasks(rows)
}

// Search retrieves the owner's tasks whose title contains the query substring,
// case-insensitive
func (r *PostgreSQLTaskRepository) Search(ctx context.Context, ownerID uuid.UUID, q string, offset, limit int) ([]*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, priority, status, created_at, updated_at
			  FROM tasks WHERE owner_id = $1 AND title ILIKE '%' || $2 || '%'
			  ORDER BY created_at DESC
			  OFFSET $3 LIMIT $4`

	rows, err := querier.QueryContext(ctx, query, ownerID, q, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search tasks")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanTasks(rows)
}

// Update persists the task's mutable fields, scoped to its owner
func (r *PostgreSQLTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tasks
			  SET title = $1, description = $2, priority = $3, status = $4, updated_at = NOW()
			  WHERE id = $5 AND owner_id = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrTaskAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update task")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task, scoped to its owner
func (r *PostgreSQLTaskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	result, err := querier.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete task")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// scanTasks collects task rows into a slice
func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&task.Priority,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan task row")
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate task rows")
	}
	return tasks, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
