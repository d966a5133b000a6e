package stage

import "strings"

// validateDetail checks the kind-dependent field rules: robot and system
// stages require a scope and at least one tool; other kinds carry none of
// scope, tools, or other tools.
func validateDetail(kind Kind, scope string, tools []string) error {
	if !kind.Valid() {
		return ErrInvalidInput
	}
	if !kind.RequiresScope() {
		return nil
	}
	if strings.TrimSpace(scope) == "" {
		return ErrInvalidInput
	}
	if len(tools) == 0 {
		return ErrInvalidInput
	}
	for _, tool := range tools {
		if strings.TrimSpace(tool) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}
