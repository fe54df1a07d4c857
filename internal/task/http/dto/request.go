// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/taskman/internal/validation"
)

// CreateTaskRequest contains the parameters for creating a new task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Status      string `json:"status"`
}

// Validate checks if the create task request is valid.
func (r *CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 10000),
		),
		validation.Field(&r.Priority,
			validation.Min(0),
		),
	)
}

// UpdateTaskRequest contains the parameters for a partial task update.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *int    `json:"priority"`
	Status      *string `json:"status"`
}
