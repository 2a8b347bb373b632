package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"maps"
	"slices"
	"sync"
)

var ErrTxClosed = errors.New("tx is closed")

// state is everything the terminal holds in memory.
type state struct {
	items    []domain.MenuItem
	carts    map[string]domain.Cart
	sessions map[string]domain.Session
}

func (s *state) clone() *state {
	carts := make(map[string]domain.Cart, len(s.carts))
	for ownerID, cart := range s.carts {
		carts[ownerID] = cloneCart(cart)
	}

	return &state{
		items:    slices.Clone(s.items),
		carts:    carts,
		sessions: maps.Clone(s.sessions),
	}
}

func cloneCart(cart domain.Cart) domain.Cart {
	return domain.Cart{
		OwnerID: cart.OwnerID,
		Lines:   slices.Clone(cart.Lines),
	}
}

// Store is the in-memory backing for all repositories. Writers work on a
// snapshot inside a Tx and publish it on Commit; the mutex is held from
// Begin until Commit or Rollback.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore(items []domain.MenuItem) *Store {
	return &Store{
		state: &state{
			items:    slices.Clone(items),
			carts:    make(map[string]domain.Cart),
			sessions: make(map[string]domain.Session),
		},
	}
}

type Tx struct {
	store  *Store
	state  *state
	closed bool
}

func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()

	return &Tx{
		store: s,
		state: s.state.clone(),
	}, nil
}

func (tx *Tx) Commit(_ context.Context) error {
	if tx.closed {
		return ErrTxClosed
	}
	tx.closed = true
	tx.store.state = tx.state
	tx.store.mu.Unlock()
	return nil
}

func (tx *Tx) Rollback(_ context.Context) error {
	if tx.closed {
		return ErrTxClosed
	}
	tx.closed = true
	tx.store.mu.Unlock()
	return nil
}

// InTx runs fn in a transaction, committing when fn succeeds. Repositories
// built with New*WithTx(tx) inside fn share the snapshot.
func InTx(ctx context.Context, store *Store, fn func(tx *Tx) error) (txErr error) {
	tx, err := store.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
