package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrChecklistItemNotFound is returned when a checklist item is not found
	ErrChecklistItemNotFound = errors.New("checklist item not found")
)
