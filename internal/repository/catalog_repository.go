package repository

import (
	"context"
	"fmt"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/port"
	"slices"
)

type catalogRepository struct {
	store *Store
	st    *state
}

func NewCatalog(store *Store) port.CatalogRepository {
	return &catalogRepository{
		store: store,
	}
}

func NewCatalogWithTx(tx *Tx) port.CatalogRepository {
	return &catalogRepository{
		st:    tx.state,
		store: nil, // use provided transaction instead
	}
}

func (r *catalogRepository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	return withRead(ctx, r.store, r.st, func(st *state) ([]domain.MenuItem, error) {
		return slices.Clone(st.items), nil
	})
}

func (r *catalogRepository) GetItem(ctx context.Context, id string) (domain.MenuItem, bool, error) {
	type result struct {
		item  domain.MenuItem
		found bool
	}

	res, err := withRead(ctx, r.store, r.st, func(st *state) (result, error) {
		i := indexItem(st.items, id)
		if i < 0 {
			return result{}, nil
		}
		return result{item: st.items[i], found: true}, nil
	})
	if err != nil {
		return domain.MenuItem{}, false, err
	}

	return res.item, res.found, nil
}

func (r *catalogRepository) CreateItem(ctx context.Context, item domain.MenuItem) error {
	if item.ID == "" {
		return fmt.Errorf("item ID is empty")
	}

	_, err := withTx(ctx, r.store, r.st, func(st *state) (struct{}, error) {
		if indexItem(st.items, item.ID) >= 0 {
			return struct{}{}, fmt.Errorf("item[%s] already exists", item.ID)
		}
		st.items = slices.Insert(st.items, 0, item)
		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *catalogRepository) UpdateItem(ctx context.Context, item domain.MenuItem) (bool, error) {
	updated, err := withTx(ctx, r.store, r.st, func(st *state) (bool, error) {
		i := indexItem(st.items, item.ID)
		if i < 0 {
			return false, nil
		}
		st.items[i] = item
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("withTx: %w", err)
	}

	return updated, nil
}

func (r *catalogRepository) DeleteItem(ctx context.Context, id string) (bool, error) {
	deleted, err := withTx(ctx, r.store, r.st, func(st *state) (bool, error) {
		i := indexItem(st.items, id)
		if i < 0 {
			return false, nil
		}
		st.items = slices.Delete(st.items, i, i+1)
		return true, nil
	})
	if err != nil {
		return false, fmt.Errorf("withTx: %w", err)
	}

	return deleted, nil
}

func indexItem(items []domain.MenuItem, id string) int {
	return slices.IndexFunc(items, func(item domain.MenuItem) bool {
		return item.ID == id
	})
}
