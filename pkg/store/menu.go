package store

import (
	"fmt"
	"pos_backend/pkg/models"
	"strings"
)

// MenuInput carries the editable fields of a menu item.
type MenuInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Category    models.ItemCategory `json:"category"`
	Image       string              `json:"image"`
	Stock       int                 `json:"stock"`
	IsAvailable *bool               `json:"isAvailable"`
	Unit        string              `json:"unit"`
	CostPrice   *float64            `json:"costPrice"`
	Supplier    string              `json:"supplier"`
}

func (in MenuInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("category %q: %w", in.Category, ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrInvalidInput)
	}
	return nil
}

func (in MenuInput) apply(item *models.MenuItem) {
	item.Name = strings.TrimSpace(in.Name)
	item.Description = strings.TrimSpace(in.Description)
	item.Price = in.Price
	item.Category = in.Category
	item.Image = strings.TrimSpace(in.Image)
	item.Stock = clampStock(in.Stock)
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	item.Unit = optional(in.Unit)
	item.CostPrice = in.CostPrice
	item.Supplier = optional(in.Supplier)
}

func clampStock(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Menu returns every item, cooking essentials included.
func (s *AppState) Menu() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

// MenuItem looks up one item.
func (s *AppState) MenuItem(id string) (models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.menuIndex(id)
	if idx < 0 {
		return models.MenuItem{}, notFound("menu item", id)
	}
	return s.menu[idx], nil
}

// POSMenu lists sellable items. category is ALL, DRINK or a single category;
// search matches the name case-insensitively.
func (s *AppState) POSMenu(category, search string) []models.MenuItem {
	category = strings.ToUpper(strings.TrimSpace(category))
	search = strings.ToLower(strings.TrimSpace(search))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.MenuItem{}
	for _, item := range s.menu {
		if item.Category == models.CategoryCookingEssential {
			continue
		}
		switch category {
		case "", "ALL":
		case "DRINK":
			if !item.Category.IsDrink() {
				continue
			}
		default:
			if string(item.Category) != category {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// LowStockThreshold is the stock level below which back-office views flag an item.
const LowStockThreshold = 20

// Back-office menu views.
const (
	MenuViewAll       = "all"
	MenuViewFood      = "food"
	MenuViewBar       = "bar"
	MenuViewInventory = "inventory"
)

// MenuItemView is a catalog entry as shown in the back office.
type MenuItemView struct {
	models.MenuItem
	LowStock bool `json:"lowStock"`
}

// ManagementMenu lists the catalog for one back-office view. food is dishes
// and desserts, bar is drinks, inventory is drinks plus cooking essentials.
// Kitchen stock is not tracked, so the food view never flags low stock.
func (s *AppState) ManagementMenu(view string) ([]MenuItemView, error) {
	view = strings.ToLower(strings.TrimSpace(view))
	var keep func(models.ItemCategory) bool
	switch view {
	case "", MenuViewAll:
		keep = func(models.ItemCategory) bool { return true }
	case MenuViewFood:
		keep = func(c models.ItemCategory) bool { return c == models.CategoryFood || c == models.CategoryDessert }
	case MenuViewBar:
		keep = models.IsDrinkCategory
	case MenuViewInventory:
		keep = func(c models.ItemCategory) bool { return c.IsDrink() || c == models.CategoryCookingEssential }
	default:
		return nil, fmt.Errorf("menu view %q: %w", view, ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []MenuItemView{}
	for _, item := range s.menu {
		if !keep(item.Category) {
			continue
		}
		out = append(out, MenuItemView{
			MenuItem: item,
			LowStock: view != MenuViewFood && item.Stock < LowStockThreshold,
		})
	}
	return out, nil
}

// AddMenuItem creates an item. New items are available unless told otherwise.
func (s *AppState) AddMenuItem(in MenuInput) (models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return models.MenuItem{}, err
	}

	item := models.MenuItem{ID: s.newID(), IsAvailable: true}
	in.apply(&item)

	s.mu.Lock()
	s.menu = append(s.menu, item)
	s.mu.Unlock()

	saved := item
	s.writeInsert("menu item "+item.ID, &saved)
	return item, nil
}

// UpdateMenuItem replaces an item's fields. Existing orders keep their snapshot.
func (s *AppState) UpdateMenuItem(id string, in MenuInput) (models.MenuItem, error) {
	if err := in.validate(); err != nil {
		return models.MenuItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.menuIndex(id)
	if idx < 0 {
		return models.MenuItem{}, notFound("menu item", id)
	}
	in.apply(&s.menu[idx])
	item := s.menu[idx]

	saved := item
	s.writeUpdate("menu item "+id, &saved)
	return item, nil
}

// SetMenuImage stores the URL of an uploaded image.
func (s *AppState) SetMenuImage(id, url string) (models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.menuIndex(id)
	if idx < 0 {
		return models.MenuItem{}, notFound("menu item", id)
	}
	s.menu[idx].Image = url
	s.writeUpdate("menu item "+id+" image", &models.MenuItem{ID: id, Image: url}, "image")
	return s.menu[idx], nil
}

// DeleteMenuItem removes an item. Orders that sold it keep their snapshot.
func (s *AppState) DeleteMenuItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.menuIndex(id)
	if idx < 0 {
		return notFound("menu item", id)
	}
	s.menu = append(s.menu[:idx:idx], s.menu[idx+1:]...)
	s.writeDelete("menu item "+id, &models.MenuItem{ID: id})
	return nil
}

func (s *AppState) menuIndex(id string) int {
	for i := range s.menu {
		if s.menu[i].ID == id {
			return i
		}
	}
	return -1
}
