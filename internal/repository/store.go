package repository

import "context"

// Store scopes a group of repository calls to a single atomic commit.
// Every mutating service operation runs its entity writes and the upward
// date recalculation inside one WithTx call; if fn returns an error, none
// of the writes survive.
type Store interface {
	// WithTx runs fn inside a transaction. The transaction travels on the
	// returned context, so repository calls made with it share the commit.
	// Nested calls join the transaction already in flight.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
