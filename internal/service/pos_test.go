package service_test

import (
	"fmt"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/repository"
	"github.com/nikolayk812/pos-demo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type posSuite struct {
	suite.Suite

	pos     *service.POS
	ownerID string
	now     time.Time
}

func TestPOSSuite(t *testing.T) {
	suite.Run(t, new(posSuite))
}

func (suite *posSuite) SetupTest() {
	suite.reset()
}

func (suite *posSuite) SetupSubTest() {
	suite.reset()
}

func (suite *posSuite) reset() {
	suite.now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	suite.ownerID = gofakeit.UUID()

	seq := 100
	suite.pos = service.New(
		repository.NewStore(domain.SeedMenu(currency.INR)),
		currency.INR,
		zap.NewNop(),
		service.WithClock(func() time.Time { return suite.now }),
		service.WithIDGenerator(func() (string, error) {
			seq++
			return fmt.Sprintf("%d", seq), nil
		}),
	)
}

func (suite *posSuite) itemIDs(category string) []string {
	items, err := suite.pos.ListItems(suite.T().Context(), category)
	suite.Require().NoError(err)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (suite *posSuite) TestCreateItem() {
	tests := []struct {
		name      string
		fields    domain.ItemFields
		want      domain.MenuItem
		wantError error
	}{
		{
			name:   "create with all fields: ok",
			fields: domain.ItemFields{Name: "Mushroom Soup", Price: "99.50", Image: "https://img.test/soup.png", Category: domain.CategoryMainCourse},
			want: domain.MenuItem{
				ID:       "101",
				Name:     "Mushroom Soup",
				Price:    domain.Money{Amount: mustDecimal("99.50"), Currency: currency.INR},
				Image:    "https://img.test/soup.png",
				Category: domain.CategoryMainCourse,
			},
		},
		{
			name:   "create with defaults: ok",
			fields: domain.ItemFields{Name: "Fries", Price: "59"},
			want: domain.MenuItem{
				ID:       "101",
				Name:     "Fries",
				Price:    domain.NewMoney(59, currency.INR),
				Image:    domain.DefaultImage("101"),
				Category: domain.DefaultCategory,
			},
		},
		{
			name:      "create with empty name: no-op",
			fields:    domain.ItemFields{Name: "", Price: "10"},
			wantError: domain.ErrFieldRequired,
		},
		{
			name:      "create with empty price: no-op",
			fields:    domain.ItemFields{Name: "Fries", Price: ""},
			wantError: domain.ErrFieldRequired,
		},
		{
			name:      "create with non-numeric price: no-op",
			fields:    domain.ItemFields{Name: "Fries", Price: "cheap"},
			wantError: domain.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			before := suite.itemIDs(domain.CategoryAll)

			item, err := suite.pos.CreateItem(t.Context(), tt.fields)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assert.True(t, service.IsInputError(err))
				assert.Equal(t, before, suite.itemIDs(domain.CategoryAll))
				return
			}
			require.NoError(t, err)

			assertItem(t, tt.want, item)
			assert.Equal(t, append([]string{item.ID}, before...), suite.itemIDs(domain.CategoryAll))
		})
	}
}

func (suite *posSuite) TestCreateItemUsesTimeOrderedIDs() {
	t := suite.T()
	pos := service.New(repository.NewStore(nil), currency.INR, zap.NewNop())

	first, err := pos.CreateItem(t.Context(), domain.ItemFields{Name: "A", Price: "1"})
	require.NoError(t, err)
	second, err := pos.CreateItem(t.Context(), domain.ItemFields{Name: "B", Price: "2"})
	require.NoError(t, err)

	firstID, err := uuid.Parse(first.ID)
	require.NoError(t, err)
	secondID, err := uuid.Parse(second.ID)
	require.NoError(t, err)

	assert.Equal(t, uuid.Version(7), firstID.Version())
	assert.NotEqual(t, firstID, secondID)
	assert.Less(t, firstID.String(), secondID.String())
}

func (suite *posSuite) TestUpdateItem() {
	suite.Run("update keeps image when empty: ok", func() {
		t := suite.T()
		ctx := t.Context()

		item, found, err := suite.pos.UpdateItem(ctx, "3", domain.ItemFields{Name: "Sirloin", Price: "279"})
		require.NoError(t, err)
		require.True(t, found)

		assertItem(t, domain.MenuItem{
			ID:       "3",
			Name:     "Sirloin",
			Price:    domain.NewMoney(279, currency.INR),
			Image:    "https://picsum.photos/300/300?3",
			Category: domain.CategoryMainCourse,
		}, item)

		// position in the catalog is unchanged
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, suite.itemIDs(domain.CategoryAll))
	})

	suite.Run("update replaces image and category: ok", func() {
		t := suite.T()

		item, found, err := suite.pos.UpdateItem(t.Context(), "7", domain.ItemFields{
			Name: "Iced Latte", Price: "89", Image: "https://img.test/latte.png", Category: domain.CategoryFastFood,
		})
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "https://img.test/latte.png", item.Image)
		assert.Equal(t, domain.CategoryFastFood, item.Category)
		assert.Equal(t, []string{"1", "2", "7"}, suite.itemIDs(domain.CategoryFastFood))
	})

	suite.Run("update unknown id: no-op", func() {
		t := suite.T()

		_, found, err := suite.pos.UpdateItem(t.Context(), "missing", domain.ItemFields{Name: "X", Price: "1"})
		require.NoError(t, err)
		assert.False(t, found)
	})

	suite.Run("update with missing name: no-op", func() {
		t := suite.T()
		ctx := t.Context()

		_, _, err := suite.pos.UpdateItem(ctx, "1", domain.ItemFields{Price: "1"})
		require.ErrorIs(t, err, domain.ErrFieldRequired)

		items, err := suite.pos.ListItems(ctx, domain.CategoryAll)
		require.NoError(t, err)
		assert.Equal(t, "Beef Burger", items[0].Name)
	})

	suite.Run("update does not resync cart snapshot", func() {
		t := suite.T()
		ctx := t.Context()

		_, _, err := suite.pos.AddToCart(ctx, suite.ownerID, "1")
		require.NoError(t, err)

		_, _, err = suite.pos.UpdateItem(ctx, "1", domain.ItemFields{Name: "Double Burger", Price: "199"})
		require.NoError(t, err)

		cart, totals, err := suite.pos.Cart(ctx, suite.ownerID)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "Beef Burger", cart.Lines[0].Name)
		assert.Equal(t, "149.00", totals.Subtotal.Amount.StringFixed(2))
	})
}

func (suite *posSuite) TestDeleteItemCascades() {
	t := suite.T()
	ctx := t.Context()
	otherOwner := gofakeit.UUID()

	for _, id := range []string{"1", "1", "7"} {
		_, _, err := suite.pos.AddToCart(ctx, suite.ownerID, id)
		require.NoError(t, err)
	}
	_, _, err := suite.pos.AddToCart(ctx, otherOwner, "1")
	require.NoError(t, err)

	deleted, err := suite.pos.DeleteItem(ctx, "1")
	require.NoError(t, err)
	assert.True(t, deleted)

	cart, totals, err := suite.pos.Cart(ctx, suite.ownerID)
	require.NoError(t, err)
	assertLines(t, []domain.CartLine{{ItemID: "7", Name: "Vanilla Latte", Price: domain.NewMoney(69, currency.INR), Qty: 1}}, cart.Lines)
	assert.Equal(t, "69.00", totals.Subtotal.Amount.StringFixed(2))

	other, _, err := suite.pos.Cart(ctx, otherOwner)
	require.NoError(t, err)
	assert.Empty(t, other.Lines)

	assert.NotContains(t, suite.itemIDs(domain.CategoryAll), "1")

	// idempotent
	deleted, err = suite.pos.DeleteItem(ctx, "1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func (suite *posSuite) TestCartScenario() {
	t := suite.T()
	ctx := t.Context()

	for _, id := range []string{"1", "1", "7"} {
		_, changed, err := suite.pos.AddToCart(ctx, suite.ownerID, id)
		require.NoError(t, err)
		require.True(t, changed)
	}

	totals, err := suite.pos.Totals(ctx, suite.ownerID)
	require.NoError(t, err)
	assert.Equal(t, "367.00", totals.Subtotal.Amount.StringFixed(2))
	assert.Equal(t, "18.35", totals.Tax.Amount.StringFixed(2))
	assert.Equal(t, "385.35", totals.Total.Amount.StringFixed(2))

	cart, changed, err := suite.pos.DecrementLine(ctx, suite.ownerID, "7")
	require.NoError(t, err)
	assert.True(t, changed)
	assertLines(t, []domain.CartLine{{ItemID: "1", Name: "Beef Burger", Price: domain.NewMoney(149, currency.INR), Qty: 2}}, cart.Lines)

	totals, err = suite.pos.Totals(ctx, suite.ownerID)
	require.NoError(t, err)
	assert.Equal(t, "298.00", totals.Subtotal.Amount.StringFixed(2))
	assert.Equal(t, "14.90", totals.Tax.Amount.StringFixed(2))
	assert.Equal(t, "312.90", totals.Total.Amount.StringFixed(2))

	cart, changed, err = suite.pos.IncrementLine(ctx, suite.ownerID, "1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, cart.Lines[0].Qty)

	cart, changed, err = suite.pos.RemoveLine(ctx, suite.ownerID, "1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, cart.Lines)
}

func (suite *posSuite) TestCartNoOps() {
	tests := []struct {
		name string
		op   func(s *service.POS) (domain.Cart, bool, error)
	}{
		{
			name: "add unknown item",
			op: func(s *service.POS) (domain.Cart, bool, error) {
				return s.AddToCart(suite.T().Context(), suite.ownerID, "missing")
			},
		},
		{
			name: "increment unknown line",
			op: func(s *service.POS) (domain.Cart, bool, error) {
				return s.IncrementLine(suite.T().Context(), suite.ownerID, "missing")
			},
		},
		{
			name: "decrement unknown line",
			op: func(s *service.POS) (domain.Cart, bool, error) {
				return s.DecrementLine(suite.T().Context(), suite.ownerID, "missing")
			},
		},
		{
			name: "remove unknown line",
			op: func(s *service.POS) (domain.Cart, bool, error) {
				return s.RemoveLine(suite.T().Context(), suite.ownerID, "missing")
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			_, _, err := suite.pos.AddToCart(t.Context(), suite.ownerID, "4")
			require.NoError(t, err)

			cart, changed, err := tt.op(suite.pos)
			require.NoError(t, err)
			assert.False(t, changed)
			assertLines(t, []domain.CartLine{{ItemID: "4", Name: "Aglio Olio", Price: domain.NewMoney(149, currency.INR), Qty: 1}}, cart.Lines)
		})
	}
}

func (suite *posSuite) TestClearCart() {
	t := suite.T()
	ctx := t.Context()

	for _, id := range []string{"3", "6", "8"} {
		_, _, err := suite.pos.AddToCart(ctx, suite.ownerID, id)
		require.NoError(t, err)
	}

	cart, err := suite.pos.ClearCart(ctx, suite.ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	totals, err := suite.pos.Totals(ctx, suite.ownerID)
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Amount.IsZero())
	assert.True(t, totals.Tax.Amount.IsZero())
	assert.True(t, totals.Total.Amount.IsZero())
}

func (suite *posSuite) TestEmptyOwnerID() {
	t := suite.T()
	ctx := t.Context()

	_, _, err := suite.pos.AddToCart(ctx, "", "1")
	require.ErrorIs(t, err, domain.ErrOwnerIDEmpty)

	_, err = suite.pos.ClearCart(ctx, "")
	require.ErrorIs(t, err, domain.ErrOwnerIDEmpty)

	_, err = suite.pos.View(ctx, "")
	require.ErrorIs(t, err, domain.ErrOwnerIDEmpty)

	_, err = suite.pos.SetTheme(ctx, "", true)
	require.ErrorIs(t, err, domain.ErrOwnerIDEmpty)
}

func (suite *posSuite) TestSessionView() {
	t := suite.T()
	ctx := t.Context()

	view, err := suite.pos.View(ctx, suite.ownerID)
	require.NoError(t, err)
	assert.Equal(t, domain.NewSession(suite.ownerID), view.Session)
	assert.Len(t, view.Items, 8)
	assert.Empty(t, view.Cart.Lines)

	session, err := suite.pos.SelectCategory(ctx, suite.ownerID, domain.CategoryDrinks)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryDrinks, session.Category)

	session, err = suite.pos.SetTheme(ctx, suite.ownerID, false)
	require.NoError(t, err)
	assert.False(t, session.Dark)
	assert.Equal(t, domain.CategoryDrinks, session.Category)

	_, _, err = suite.pos.AddToCart(ctx, suite.ownerID, "8")
	require.NoError(t, err)

	view, err = suite.pos.View(ctx, suite.ownerID)
	require.NoError(t, err)
	assert.False(t, view.Session.Dark)

	ids := make([]string, 0, len(view.Items))
	for _, item := range view.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"7", "8"}, ids)
	assert.Equal(t, "82.95", view.Totals.Total.Amount.StringFixed(2))

	session, err = suite.pos.SelectCategory(ctx, suite.ownerID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryAll, session.Category)
}

func (suite *posSuite) TestCartLineCreatedAt() {
	t := suite.T()

	cart, _, err := suite.pos.AddToCart(t.Context(), suite.ownerID, "2")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, suite.now, cart.Lines[0].CreatedAt)
}

var moneyComparer = cmp.Comparer(func(x, y domain.Money) bool {
	return x.Amount.Equal(y.Amount) && x.Currency.String() == y.Currency.String()
})

func assertItem(t *testing.T, expected, actual domain.MenuItem) {
	t.Helper()

	assert.Empty(t, cmp.Diff(expected, actual, moneyComparer))
}

func assertLines(t *testing.T, expected, actual []domain.CartLine) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartLine{}, "CreatedAt"),
		cmpopts.EquateEmpty(),
		moneyComparer,
	}

	assert.Empty(t, cmp.Diff(expected, actual, opts))
}
