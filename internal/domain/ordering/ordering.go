// Package ordering assigns display positions to sibling entities.
package ordering

import "errors"

// ErrInvalidOrder indicates the submitted id sequence does not match the
// current sibling set exactly.
var ErrInvalidOrder = errors.New("invalid order: ids do not match sibling set")

// Position pairs an entity id with its new position value.
type Position struct {
	ID       string
	Position int
}

// Apply validates that requested is a permutation of current and returns
// strictly increasing 1-based positions in the requested order. Omissions,
// unknown ids, and duplicates all fail with ErrInvalidOrder.
func Apply(current, requested []string) ([]Position, error) {
	if len(requested) != len(current) {
		return nil, ErrInvalidOrder
	}

	remaining := make(map[string]struct{}, len(current))
	for _, id := range current {
		remaining[id] = struct{}{}
	}

	positions := make([]Position, 0, len(requested))
	for i, id := range requested {
		if _, ok := remaining[id]; !ok {
			return nil, ErrInvalidOrder
		}
		delete(remaining, id)
		positions = append(positions, Position{ID: id, Position: i + 1})
	}

	return positions, nil
}

// Next returns the position for a newly created sibling: one past the
// current maximum, starting at 1.
func Next(existing []int) int {
	max := 0
	for _, p := range existing {
		if p > max {
			max = p
		}
	}
	return max + 1
}
