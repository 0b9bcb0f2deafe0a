package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizza-store/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SortOrder is the price ordering applied when browsing the menu.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case; anything else means no ordering.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return SortAsc
	case "DESC":
		return SortDesc
	}
	return SortNone
}

// MenuFilter holds the optional browsing constraints. Unset fields constrain nothing.
type MenuFilter struct {
	Type     string
	MaxPrice *decimal.Decimal
	Sort     SortOrder
}

func (f *MenuFilter) Reset() {
	*f = MenuFilter{}
}

// ParsePrice reads a non-negative decimal price.
func ParsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil || p.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return p, nil
}

// BrowseMenu lists menu items matching f.
func (r *Repository) BrowseMenu(ctx context.Context, f MenuFilter) ([]models.Item, error) {
	q := r.db.WithContext(ctx).Model(&models.Item{})
	if t := strings.TrimSpace(f.Type); t != "" {
		q = q.Where("typeofitem = ?", t)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	switch f.Sort {
	case SortAsc:
		q = q.Order("price ASC")
	case SortDesc:
		q = q.Order("price DESC")
	}

	var items []models.Item
	if err := q.Order("itemname").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	return items, nil
}

// ItemGroup is every item of one type.
type ItemGroup struct {
	Type  string        `json:"type"`
	Items []models.Item `json:"items"`
}

func catalog(db *gorm.DB) ([]ItemGroup, error) {
	var items []models.Item
	if err := db.Order("typeofitem").Order("itemname").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	var groups []ItemGroup
	for _, it := range items {
		t := strings.TrimSpace(it.TypeOfItem)
		if len(groups) == 0 || groups[len(groups)-1].Type != t {
			groups = append(groups, ItemGroup{Type: t})
		}
		g := &groups[len(groups)-1]
		g.Items = append(g.Items, it)
	}
	return groups, nil
}

// Catalog returns the whole menu grouped by item type.
func (r *Repository) Catalog(ctx context.Context) ([]ItemGroup, error) {
	return catalog(r.db.WithContext(ctx))
}

func findItem(db *gorm.DB, name string) (*models.Item, error) {
	var item models.Item
	err := db.Where("itemname = ?", strings.TrimSpace(name)).First(&item).Error
	switch {
	case err == nil:
		return &item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrItemNotFound
	default:
		return nil, fmt.Errorf("select item: %w", err)
	}
}

// GetItem looks an item up by its exact name.
func (r *Repository) GetItem(ctx context.Context, name string) (*models.Item, error) {
	return findItem(r.db.WithContext(ctx), name)
}

// NewItem is a menu item to add. Price is parsed as a decimal.
type NewItem struct {
	ItemName    string `validate:"required,max=50"`
	Ingredients string `validate:"max=300"`
	TypeOfItem  string `validate:"required,max=40"`
	Price       string `validate:"required"`
	Description string `validate:"max=400"`
}

// CreateItem adds a menu item. An existing item with the same name is left untouched.
func (r *Repository) CreateItem(ctx context.Context, in NewItem) (*models.Item, error) {
	in.ItemName = strings.TrimSpace(in.ItemName)
	in.TypeOfItem = strings.TrimSpace(in.TypeOfItem)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	n, err := r.conn.QueryCount(ctx, `SELECT 1 FROM items WHERE itemname = ?`, in.ItemName)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrItemExists
	}

	item := models.Item{
		ItemName:    in.ItemName,
		Ingredients: strings.TrimSpace(in.Ingredients),
		TypeOfItem:  in.TypeOfItem,
		Price:       price,
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		item.Description = &d
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &item, nil
}

// ItemField names the single attribute an item update changes.
type ItemField string

const (
	ItemIngredients ItemField = "ingredients"
	ItemType        ItemField = "typeofitem"
	ItemPrice       ItemField = "price"
	ItemDescription ItemField = "description"
)

// UpdateItemField changes one attribute of an existing item.
func (r *Repository) UpdateItemField(ctx context.Context, name string, field ItemField, value string) error {
	value = strings.TrimSpace(value)
	var column interface{} = value

	switch field {
	case ItemPrice:
		p, err := ParsePrice(value)
		if err != nil {
			return err
		}
		column = p
	case ItemType:
		if value == "" {
			return fmt.Errorf("%w: type is empty", ErrInvalidInput)
		}
	case ItemDescription:
		if value == "" {
			column = nil
		}
	case ItemIngredients:
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}

	res := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("itemname = ?", strings.TrimSpace(name)).
		Update(string(field), column)
	if res.Error != nil {
		return fmt.Errorf("update item %s: %w", field, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
