package repository

import (
	"context"
	"errors"
	"fmt"
)

func withTx[T any](ctx context.Context, store *Store, st *state, fn func(st *state) (T, error)) (_ T, txErr error) {
	var zero T

	// If we're already in a transaction (store is nil), just use its snapshot
	if store == nil {
		return fn(st)
	}

	// Otherwise, create a new transaction
	tx, err := store.Begin(ctx)
	if err != nil {
		return zero, err
	}

	// Ensure proper rollback handling
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx.state)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}

	return result, nil
}

// withRead runs fn against the committed state, or the transaction snapshot
// when store is nil.
func withRead[T any](ctx context.Context, store *Store, st *state, fn func(st *state) (T, error)) (T, error) {
	if store == nil {
		return fn(st)
	}

	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	return fn(store.state)
}
