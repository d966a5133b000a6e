package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/lattice/internal/domain/macrostage"
	"github.com/rpggio/lattice/internal/domain/ordering"
	"github.com/rpggio/lattice/internal/domain/project"
	"github.com/rpggio/lattice/internal/domain/stage"
	"github.com/rpggio/lattice/internal/domain/task"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unmapped errors pass
// through unchanged so internal failures are not dressed up as client faults.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, macrostage.ErrProjectNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects to see valid IDs"}
	case errors.Is(err, macrostage.ErrMacroStageNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "macro stage not found", RecoveryHint: "Call get_project_tree to see valid IDs"}
	case errors.Is(err, stage.ErrStageNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "stage not found", RecoveryHint: "Call get_project_tree to see valid IDs"}
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "task not found", RecoveryHint: "Call get_project_tree to see valid IDs"}
	case errors.Is(err, task.ErrUpdateNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "weekly update not found", RecoveryHint: "Call list_weekly_updates to see valid IDs"}
	case errors.Is(err, macrostage.ErrModeConflict):
		return &APIError{Code: "MODE_CONFLICT", Message: err.Error(), RecoveryHint: "Remove existing children or use the macro stage's current structure"}
	case errors.Is(err, ordering.ErrInvalidOrder):
		return &APIError{Code: "VALIDATION_ERROR", Message: "order must list each current sibling exactly once", RecoveryHint: "Re-read the current ordering and resend all IDs"}
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, macrostage.ErrInvalidInput),
		errors.Is(err, stage.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_ERROR", Message: err.Error()}
	default:
		return err
	}
}

// validationError reports a malformed request before it reaches a service.
func validationError(format string, args ...any) *APIError {
	return &APIError{Code: "VALIDATION_ERROR", Message: fmt.Sprintf(format, args...)}
}
