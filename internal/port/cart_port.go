package port

import (
	"context"
	"github.com/nikolayk812/pos-demo/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
	DeleteItem(ctx context.Context, ownerID string, itemID string) (bool, error)
	// PurgeItem removes the item's line from every cart and reports how many
	// carts were touched.
	PurgeItem(ctx context.Context, itemID string) (int, error)
}
