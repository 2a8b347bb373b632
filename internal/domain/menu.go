package domain

import "golang.org/x/text/currency"

const (
	CategoryAll        = "All"
	CategoryFastFood   = "Fast Food"
	CategoryMainCourse = "Main Course"
	CategoryPasta      = "Pasta"
	CategoryDrinks     = "Drinks"

	// DefaultCategory is assigned to new items created without a category.
	DefaultCategory = CategoryFastFood
)

// Categories lists the filter chips in display order, CategoryAll first.
var Categories = []string{CategoryAll, CategoryFastFood, CategoryMainCourse, CategoryPasta, CategoryDrinks}

type MenuItem struct {
	ID       string
	Name     string
	Price    Money
	Image    string
	Category string
}

// ItemFields carries raw form input for creating or editing a MenuItem.
type ItemFields struct {
	Name     string
	Price    string
	Image    string
	Category string
}

// Validate checks presence of the required fields and parses the price. The
// name is taken as typed, whitespace included.
func (f ItemFields) Validate(cur currency.Unit) (Money, error) {
	if f.Name == "" {
		return Money{}, fmtRequired("name")
	}

	return ParsePrice(f.Price, cur)
}

// Apply returns a copy of item with the edited fields. Name and price always
// replace; image and category are kept when left empty.
func (item MenuItem) Apply(f ItemFields, price Money) MenuItem {
	item.Name = f.Name
	item.Price = price
	if f.Image != "" {
		item.Image = f.Image
	}
	if f.Category != "" {
		item.Category = f.Category
	}
	return item
}

// FilterByCategory keeps items whose category equals category. CategoryAll
// and the empty string match everything.
func FilterByCategory(items []MenuItem, category string) []MenuItem {
	if category == "" || category == CategoryAll {
		return items
	}

	var filtered []MenuItem
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func DefaultImage(id string) string {
	return "https://picsum.photos/300/300?random=" + id
}

// SeedMenu is the starter menu the terminal boots with.
func SeedMenu(cur currency.Unit) []MenuItem {
	seed := []struct {
		id, name, category string
		price              int64
	}{
		{"1", "Beef Burger", CategoryFastFood, 149},
		{"2", "Fish & Chips", CategoryFastFood, 149},
		{"3", "Ribeye Steak", CategoryMainCourse, 249},
		{"4", "Aglio Olio", CategoryPasta, 149},
		{"5", "Chicken Chop", CategoryMainCourse, 149},
		{"6", "Lamb Shank", CategoryMainCourse, 249},
		{"7", "Vanilla Latte", CategoryDrinks, 69},
		{"8", "Cold Coffee", CategoryDrinks, 79},
	}

	items := make([]MenuItem, 0, len(seed))
	for _, s := range seed {
		items = append(items, MenuItem{
			ID:       s.id,
			Name:     s.name,
			Price:    NewMoney(s.price, cur),
			Image:    "https://picsum.photos/300/300?" + s.id,
			Category: s.category,
		})
	}
	return items
}
