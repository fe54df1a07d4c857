// Package http provides HTTP handlers for task management operations.
// Every handler resolves the caller identity from the request context; the
// authentication middleware must run before these handlers.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/taskman/internal/auth/http"
	apperrors "github.com/allisson/taskman/internal/errors"
	"github.com/allisson/taskman/internal/httputil"
	"github.com/allisson/taskman/internal/task/http/dto"
	taskUseCase "github.com/allisson/taskman/internal/task/usecase"
	customValidation "github.com/allisson/taskman/internal/validation"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	taskUseCase taskUseCase.TaskUseCase
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler with required dependencies.
func NewTaskHandler(
	taskUseCase taskUseCase.TaskUseCase,
	logger *slog.Logger,
) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
		logger:      logger,
	}
}

// ownerID resolves the caller's user id from the request context.
func (h *TaskHandler) ownerID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok || identity == nil {
		// Authentication middleware not run; treat as unauthorized
		h.logger.Error("task handler: no identity in context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return identity.UserID, true
}

// taskID parses the :id path parameter.
func (h *TaskHandler) taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid task id format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// CreateTaskHandler creates a new task for the caller.
// POST /tasks - Returns 201 Created with the task.
// A duplicate title for the same owner returns 400.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	task, err := h.taskUseCase.Create(c.Request.Context(), ownerID, taskUseCase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapTaskToResponse(task))
}

// ListTasksHandler lists the caller's tasks.
// GET /tasks - Supports offset/limit pagination.
func (h *TaskHandler) ListTasksHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	tasks, err := h.taskUseCase.List(c.Request.Context(), ownerID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTasksToListResponse(tasks))
}

// SearchTasksHandler searches the caller's tasks by title substring.
// GET /tasks/search?q= - An empty query behaves like a plain list.
func (h *TaskHandler) SearchTasksHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	tasks, err := h.taskUseCase.Search(c.Request.Context(), ownerID, c.Query("q"), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTasksToListResponse(tasks))
}

// GetTaskHandler retrieves one of the caller's tasks.
// GET /tasks/:id - A task owned by someone else returns 404, the same as a
// missing task.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	id, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskUseCase.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTaskToResponse(task))
}

// UpdateTaskHandler applies a partial update to one of the caller's tasks.
// PATCH /tasks/:id - Absent fields are left unchanged.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	id, ok := h.taskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	task, err := h.taskUseCase.Update(c.Request.Context(), ownerID, id, taskUseCase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTaskToResponse(task))
}

// DeleteTaskHandler removes one of the caller's tasks.
// DELETE /tasks/:id - Returns 204 No Content on success.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	ownerID, ok := h.ownerID(c)
	if !ok {
		return
	}

	id, ok := h.taskID(c)
	if !ok {
		return
	}

	if err := h.taskUseCase.Delete(c.Request.Context(), ownerID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
