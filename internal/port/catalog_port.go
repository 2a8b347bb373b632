package port

import (
	"context"
	"github.com/nikolayk812/pos-demo/internal/domain"
)

type CatalogRepository interface {
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id string) (domain.MenuItem, bool, error)
	// CreateItem puts item at the front of the catalog.
	CreateItem(ctx context.Context, item domain.MenuItem) error
	UpdateItem(ctx context.Context, item domain.MenuItem) (bool, error)
	DeleteItem(ctx context.Context, id string) (bool, error)
}
