package handler

import (
	"encoding/json"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/service"
)

type moneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type itemDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    moneyDTO `json:"price"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
}

type lineDTO struct {
	ItemID    string   `json:"item_id"`
	Name      string   `json:"name"`
	Price     moneyDTO `json:"price"`
	Qty       int      `json:"qty"`
	LineTotal moneyDTO `json:"line_total"`
}

type totalsDTO struct {
	Subtotal moneyDTO `json:"subtotal"`
	Tax      moneyDTO `json:"tax"`
	Total    moneyDTO `json:"total"`
}

type cartDTO struct {
	OwnerID   string    `json:"owner_id"`
	Lines     []lineDTO `json:"lines"`
	LineCount int       `json:"line_count"`
	UnitCount int       `json:"unit_count"`
	Totals    totalsDTO `json:"totals"`
}

type sessionDTO struct {
	OwnerID  string `json:"owner_id"`
	Dark     bool   `json:"dark"`
	Category string `json:"category"`
}

type viewDTO struct {
	Session    sessionDTO `json:"session"`
	Categories []string   `json:"categories"`
	Items      []itemDTO  `json:"items"`
	Cart       cartDTO    `json:"cart"`
}

// itemRequest is the add/edit form. Price stays text so that the service can
// reject non-numeric input itself.
type itemRequest struct {
	Name     string `json:"name"`
	Price    priceText `json:"price"`
	Image    string    `json:"image"`
	Category string    `json:"category"`
}

// priceText accepts both "149" and 149 from the form.
type priceText string

func (p *priceText) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = priceText(s)
		return nil
	}
	if string(data) == "null" {
		*p = ""
		return nil
	}
	*p = priceText(data)
	return nil
}

func (r itemRequest) fields() domain.ItemFields {
	return domain.ItemFields{
		Name:     r.Name,
		Price:    string(r.Price),
		Image:    r.Image,
		Category: r.Category,
	}
}

type categoryRequest struct {
	Category string `json:"category"`
}

type themeRequest struct {
	Dark *bool `json:"dark"`
}

func toMoneyDTO(m domain.Money) moneyDTO {
	return moneyDTO{
		Amount:   m.Amount.StringFixed(2),
		Currency: m.Currency.String(),
	}
}

func toItemDTO(item domain.MenuItem) itemDTO {
	return itemDTO{
		ID:       item.ID,
		Name:     item.Name,
		Price:    toMoneyDTO(item.Price),
		Image:    item.Image,
		Category: item.Category,
	}
}

func toItemDTOs(items []domain.MenuItem) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toItemDTO(item))
	}
	return out
}

func toCartDTO(cart domain.Cart, totals domain.Totals) cartDTO {
	lines := make([]lineDTO, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, lineDTO{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Price:     toMoneyDTO(line.Price),
			Qty:       line.Qty,
			LineTotal: toMoneyDTO(line.Price.Mul(line.Qty)),
		})
	}

	return cartDTO{
		OwnerID:   cart.OwnerID,
		Lines:     lines,
		LineCount: len(cart.Lines),
		UnitCount: cart.UnitCount(),
		Totals: totalsDTO{
			Subtotal: toMoneyDTO(totals.Subtotal),
			Tax:      toMoneyDTO(totals.Tax),
			Total:    toMoneyDTO(totals.Total),
		},
	}
}

func toSessionDTO(session domain.Session) sessionDTO {
	return sessionDTO{
		OwnerID:  session.OwnerID,
		Dark:     session.Dark,
		Category: session.Category,
	}
}

func toViewDTO(view service.View) viewDTO {
	return viewDTO{
		Session:    toSessionDTO(view.Session),
		Categories: domain.Categories,
		Items:      toItemDTOs(view.Items),
		Cart:       toCartDTO(view.Cart, view.Totals),
	}
}
