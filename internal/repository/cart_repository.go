package repository

import (
	"context"
	"fmt"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/port"
)

type cartRepository struct {
	store *Store
	st    *state
}

func NewCart(store *Store) port.CartRepository {
	return &cartRepository{
		store: store,
	}
}

func NewCartWithTx(tx *Tx) port.CartRepository {
	return &cartRepository{
		st:    tx.state,
		store: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, domain.ErrOwnerIDEmpty
	}

	return withRead(ctx, r.store, r.st, func(st *state) (domain.Cart, error) {
		cart, ok := st.carts[ownerID]
		if !ok {
			return domain.Cart{OwnerID: ownerID}, nil
		}
		return cloneCart(cart), nil
	})
}

func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return domain.ErrOwnerIDEmpty
	}

	for _, line := range cart.Lines {
		if line.Qty < 1 {
			return fmt.Errorf("line[%s] qty[%d] is not positive", line.ItemID, line.Qty)
		}
	}

	_, err := withTx(ctx, r.store, r.st, func(st *state) (struct{}, error) {
		if len(cart.Lines) == 0 {
			delete(st.carts, cart.OwnerID)
			return struct{}{}, nil
		}
		st.carts[cart.OwnerID] = cloneCart(cart)
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID string, itemID string) (bool, error) {
	if ownerID == "" {
		return false, domain.ErrOwnerIDEmpty
	}

	deleted, err := withTx(ctx, r.store, r.st, func(st *state) (bool, error) {
		cart, ok := st.carts[ownerID]
		if !ok {
			return false, nil
		}
		return removeLine(st, cart, itemID), nil
	})
	if err != nil {
		return false, fmt.Errorf("withTx: %w", err)
	}

	return deleted, nil
}

func (r *cartRepository) PurgeItem(ctx context.Context, itemID string) (int, error) {
	purged, err := withTx(ctx, r.store, r.st, func(st *state) (int, error) {
		n := 0
		for _, cart := range st.carts {
			if removeLine(st, cart, itemID) {
				n++
			}
		}
		return n, nil
	})
	if err != nil {
		return 0, fmt.Errorf("withTx: %w", err)
	}

	return purged, nil
}

// removeLine writes back cart without itemID's line; carts left empty are dropped.
func removeLine(st *state, cart domain.Cart, itemID string) bool {
	cart = cloneCart(cart)
	if !cart.RemoveLine(itemID) {
		return false
	}

	if len(cart.Lines) == 0 {
		delete(st.carts, cart.OwnerID)
	} else {
		st.carts[cart.OwnerID] = cart
	}
	return true
}
