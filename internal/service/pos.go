// Package service implements the terminal's catalog, cart and session
// operations on top of the in-memory repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/port"
	"github.com/nikolayk812/pos-demo/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"time"
)

type POS struct {
	store    *repository.Store
	catalog  port.CatalogRepository
	carts    port.CartRepository
	sessions port.SessionRepository

	currency currency.Unit
	logger   *zap.Logger
	now      func() time.Time
	newID    func() (string, error)
}

type Option func(*POS)

func WithClock(now func() time.Time) Option {
	return func(p *POS) { p.now = now }
}

func WithIDGenerator(newID func() (string, error)) Option {
	return func(p *POS) { p.newID = newID }
}

// View is everything a screen needs to render one session.
type View struct {
	Session domain.Session
	Items   []domain.MenuItem
	Cart    domain.Cart
	Totals  domain.Totals
}

func New(store *repository.Store, cur currency.Unit, logger *zap.Logger, opts ...Option) *POS {
	p := &POS{
		store:    store,
		catalog:  repository.NewCatalog(store),
		carts:    repository.NewCart(store),
		sessions: repository.NewSession(store),
		currency: cur,
		logger:   logger,
		now:      time.Now,
		newID:    newItemID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// newItemID returns a UUIDv7, which embeds the creation timestamp.
func newItemID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (p *POS) Currency() currency.Unit {
	return p.currency
}

func (p *POS) ListItems(ctx context.Context, category string) ([]domain.MenuItem, error) {
	items, err := p.catalog.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListItems: %w", err)
	}

	return domain.FilterByCategory(items, category), nil
}

func (p *POS) CreateItem(ctx context.Context, fields domain.ItemFields) (domain.MenuItem, error) {
	price, err := fields.Validate(p.currency)
	if err != nil {
		p.logger.Info("create item rejected", zap.Error(err))
		return domain.MenuItem{}, err
	}

	id, err := p.newID()
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("newID: %w", err)
	}

	item := domain.MenuItem{ID: id, Category: domain.DefaultCategory}.Apply(fields, price)
	if item.Image == "" {
		item.Image = domain.DefaultImage(id)
	}

	if err := p.catalog.CreateItem(ctx, item); err != nil {
		return domain.MenuItem{}, fmt.Errorf("catalog.CreateItem: %w", err)
	}

	p.logger.Info("item created",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Stringer("price", item.Price),
		zap.String("category", item.Category))

	return item, nil
}

// UpdateItem edits an existing item. It reports false when id is unknown.
func (p *POS) UpdateItem(ctx context.Context, id string, fields domain.ItemFields) (domain.MenuItem, bool, error) {
	price, err := fields.Validate(p.currency)
	if err != nil {
		p.logger.Info("update item rejected", zap.String("item_id", id), zap.Error(err))
		return domain.MenuItem{}, false, err
	}

	var (
		updated domain.MenuItem
		found   bool
	)

	err = repository.InTx(ctx, p.store, func(tx *repository.Tx) error {
		catalog := repository.NewCatalogWithTx(tx)

		current, ok, err := catalog.GetItem(ctx, id)
		if err != nil {
			return fmt.Errorf("catalog.GetItem: %w", err)
		}
		if !ok {
			return nil
		}

		updated = current.Apply(fields, price)
		found, err = catalog.UpdateItem(ctx, updated)
		if err != nil {
			return fmt.Errorf("catalog.UpdateItem: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.MenuItem{}, false, err
	}

	if !found {
		p.logger.Debug("update of unknown item ignored", zap.String("item_id", id))
		return domain.MenuItem{}, false, nil
	}

	p.logger.Info("item updated",
		zap.String("item_id", updated.ID),
		zap.String("name", updated.Name),
		zap.Stringer("price", updated.Price))

	return updated, true, nil
}

// DeleteItem removes the item and its lines from every cart in one
// transaction.
func (p *POS) DeleteItem(ctx context.Context, id string) (bool, error) {
	var (
		deleted bool
		purged  int
	)

	err := repository.InTx(ctx, p.store, func(tx *repository.Tx) error {
		var err error

		deleted, err = repository.NewCatalogWithTx(tx).DeleteItem(ctx, id)
		if err != nil {
			return fmt.Errorf("catalog.DeleteItem: %w", err)
		}

		purged, err = repository.NewCartWithTx(tx).PurgeItem(ctx, id)
		if err != nil {
			return fmt.Errorf("carts.PurgeItem: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		p.logger.Info("item deleted", zap.String("item_id", id), zap.Int("carts_purged", purged))
	}

	return deleted, nil
}

func (p *POS) AddToCart(ctx context.Context, ownerID, itemID string) (domain.Cart, bool, error) {
	return p.mutateCart(ctx, ownerID, itemID, "add to cart", func(tx *repository.Tx, cart *domain.Cart) (bool, error) {
		item, ok, err := repository.NewCatalogWithTx(tx).GetItem(ctx, itemID)
		if err != nil {
			return false, fmt.Errorf("catalog.GetItem: %w", err)
		}
		if !ok {
			return false, nil
		}

		cart.AddLine(item, p.now())
		return true, nil
	})
}

func (p *POS) IncrementLine(ctx context.Context, ownerID, itemID string) (domain.Cart, bool, error) {
	return p.mutateCart(ctx, ownerID, itemID, "increment line", func(_ *repository.Tx, cart *domain.Cart) (bool, error) {
		return cart.Increment(itemID), nil
	})
}

func (p *POS) DecrementLine(ctx context.Context, ownerID, itemID string) (domain.Cart, bool, error) {
	return p.mutateCart(ctx, ownerID, itemID, "decrement line", func(_ *repository.Tx, cart *domain.Cart) (bool, error) {
		return cart.Decrement(itemID), nil
	})
}

func (p *POS) RemoveLine(ctx context.Context, ownerID, itemID string) (domain.Cart, bool, error) {
	return p.mutateCart(ctx, ownerID, itemID, "remove line", func(_ *repository.Tx, cart *domain.Cart) (bool, error) {
		return cart.RemoveLine(itemID), nil
	})
}

func (p *POS) ClearCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	cart, _, err := p.mutateCart(ctx, ownerID, "", "clear cart", func(_ *repository.Tx, cart *domain.Cart) (bool, error) {
		changed := len(cart.Lines) > 0
		cart.Clear()
		return changed, nil
	})
	return cart, err
}

func (p *POS) Cart(ctx context.Context, ownerID string) (domain.Cart, domain.Totals, error) {
	cart, err := p.carts.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, domain.Totals{}, fmt.Errorf("carts.GetCart: %w", err)
	}

	return cart, cart.Totals(p.currency), nil
}

func (p *POS) Totals(ctx context.Context, ownerID string) (domain.Totals, error) {
	_, totals, err := p.Cart(ctx, ownerID)
	return totals, err
}

func (p *POS) SelectCategory(ctx context.Context, ownerID, category string) (domain.Session, error) {
	if category == "" {
		category = domain.CategoryAll
	}

	return p.mutateSession(ctx, ownerID, func(session *domain.Session) {
		session.Category = category
	})
}

func (p *POS) SetTheme(ctx context.Context, ownerID string, dark bool) (domain.Session, error) {
	return p.mutateSession(ctx, ownerID, func(session *domain.Session) {
		session.Dark = dark
	})
}

func (p *POS) View(ctx context.Context, ownerID string) (View, error) {
	session, err := p.sessions.GetSession(ctx, ownerID)
	if err != nil {
		return View{}, fmt.Errorf("sessions.GetSession: %w", err)
	}

	items, err := p.ListItems(ctx, session.Category)
	if err != nil {
		return View{}, err
	}

	cart, totals, err := p.Cart(ctx, ownerID)
	if err != nil {
		return View{}, err
	}

	return View{
		Session: session,
		Items:   items,
		Cart:    cart,
		Totals:  totals,
	}, nil
}

func (p *POS) mutateCart(
	ctx context.Context,
	ownerID, itemID, op string,
	fn func(tx *repository.Tx, cart *domain.Cart) (bool, error),
) (domain.Cart, bool, error) {
	if ownerID == "" {
		return domain.Cart{}, false, domain.ErrOwnerIDEmpty
	}

	var (
		cart    domain.Cart
		changed bool
	)

	err := repository.InTx(ctx, p.store, func(tx *repository.Tx) error {
		carts := repository.NewCartWithTx(tx)

		var err error
		cart, err = carts.GetCart(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("carts.GetCart: %w", err)
		}

		changed, err = fn(tx, &cart)
		if err != nil || !changed {
			return err
		}

		if err := carts.SaveCart(ctx, cart); err != nil {
			return fmt.Errorf("carts.SaveCart: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Cart{}, false, err
	}

	fields := []zap.Field{zap.String("owner_id", ownerID)}
	if itemID != "" {
		fields = append(fields, zap.String("item_id", itemID))
		if line, ok := cart.Line(itemID); ok {
			fields = append(fields, zap.Int("qty", line.Qty))
		}
	}

	if changed {
		p.logger.Info(op, fields...)
	} else {
		p.logger.Debug(op+" ignored", fields...)
	}

	return cart, changed, nil
}

func (p *POS) mutateSession(ctx context.Context, ownerID string, fn func(session *domain.Session)) (domain.Session, error) {
	var session domain.Session

	err := repository.InTx(ctx, p.store, func(tx *repository.Tx) error {
		sessions := repository.NewSessionWithTx(tx)

		var err error
		session, err = sessions.GetSession(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("sessions.GetSession: %w", err)
		}

		fn(&session)

		if err := sessions.SaveSession(ctx, session); err != nil {
			return fmt.Errorf("sessions.SaveSession: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}

	p.logger.Info("session updated",
		zap.String("owner_id", ownerID),
		zap.Bool("dark", session.Dark),
		zap.String("category", session.Category))

	return session, nil
}

// IsInputError reports whether err was caused by bad form input rather than
// the terminal itself.
func IsInputError(err error) bool {
	return errors.Is(err, domain.ErrFieldRequired) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrOwnerIDEmpty)
}
