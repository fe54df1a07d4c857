// Package repository provides data persistence implementations for task entities.
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

// MySQLTaskRepository handles task persistence for MySQL
type MySQLTaskRepository struct {
	db *sql.DB
}

// NewMySQLTaskRepository creates a new MySQLTaskRepository
func NewMySQLTaskRepository(db *sql.DB) *MySQLTaskRepository {
	return &MySQLTaskRepository{
		db: db,
	}
}

// Create inserts a new task
func (r *MySQLTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tasks (id, owner_id, title, description, priority, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := task.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := task.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		ownerBytes,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate title per owner)
		if isMySQLUniqueViolation(err) {
			return domain.ErrTaskAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create task")
	}
	return nil
}

// GetByID retrieves a task by ID scoped to its owner
func (r *MySQLTaskRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, priority, status, created_at, updated_at
			  FROM tasks WHERE id = ? AND owner_id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal owner UUID")
	}

	row := querier.QueryRowContext(ctx, query, idBytes, ownerBytes)
	task, err := scanMySQLTaskRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get task by id")
	}

	return task, nil
}

// List retrieves the owner's tasks ordered by creation time, newest first
func (r *MySQLTaskRepository) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, priority, status, created_at, updated_at
			  FROM tasks WHERE owner_id = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal owner UUID")
	}

	rows, err := querier.QueryContext(ctx, query, ownerBytes, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tasks")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLTasks(rows)
}

// Search retrieves the owner's tasks whose title contains the query substring,
// case-insensitive
func (r *MySQLTaskRepository) Search(ctx context.Context, ownerID uuid.UUID, q string, offset, limit int) ([]*domain.Task, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, description, priority, status, created_at, updated_at
			  FROM tasks WHERE owner_id = ? AND LOWER(title) LIKE CONCAT('%', LOWER(?), '%')
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal owner UUID")
	}

	rows, err := querier.QueryContext(ctx, query, ownerBytes, q, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to search tasks")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMySQLTasks(rows)
}

// Update persists the task's mutable fields, scoped to its owner
func (r *MySQLTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tasks
			  SET title = ?, description = ?, priority = ?, status = ?, updated_at = NOW()
			  WHERE id = ? AND owner_id = ?`

	idBytes, err := task.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := task.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner UUID")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		idBytes,
		ownerBytes,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
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
func (r *MySQLTaskRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM tasks WHERE id = ? AND owner_id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := ownerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal owner UUID")
	}

	result, err := querier.ExecContext(ctx, query, idBytes, ownerBytes)
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

// scanMySQLTaskRow scans a single task row, converting BINARY(16) ids back to UUIDs
func scanMySQLTaskRow(row *sql.Row) (*domain.Task, error) {
	var task domain.Task
	var idBytes, ownerBytes []byte

	err := row.Scan(
		&idBytes,
		&ownerBytes,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := task.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := task.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal owner UUID")
	}

	return &task, nil
}

// scanMySQLTasks collects task rows into a slice, converting BINARY(16) ids back to UUIDs
func scanMySQLTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		var idBytes, ownerBytes []byte

		err := rows.Scan(
			&idBytes,
			&ownerBytes,
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

		if err := task.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := task.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal owner UUID")
		}

		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate task rows")
	}
	return tasks, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
