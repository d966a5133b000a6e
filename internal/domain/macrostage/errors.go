package macrostage

import "errors"

var (
	// ErrMacroStageNotFound indicates the macro stage doesn't exist.
	ErrMacroStageNotFound = errors.New("macrostage not found")
	// ErrProjectNotFound indicates the referenced parent project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrModeConflict indicates an operation would violate the structural
	// exclusivity between stages and direct tasks.
	ErrModeConflict = errors.New("structure mode conflict")
	// ErrInvalidInput indicates invalid macro stage input.
	ErrInvalidInput = errors.New("invalid macrostage input")
)
