package inventory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/model"
)

// barcodePrefix starts every generated barcode.
const barcodePrefix = "ZLG"

// ItemDraft holds the caller-supplied fields of a new item.
type ItemDraft struct {
	Name          string
	Type          string
	Department    string
	HasExpiry     bool
	ExpiryDays    int
	Image         string
	PricePerPiece decimal.Decimal
	CurrentStock  int
	LowStockAlert int
}

// ItemPatch lists item field changes. Nil fields are left unchanged.
type ItemPatch struct {
	Name          *string
	Type          *string
	Department    *string
	HasExpiry     *bool
	ExpiryDays    *int
	Image         *string
	PricePerPiece *decimal.Decimal
	CurrentStock  *int
	LowStockAlert *int
}

// AddItem creates an item with a fresh id and barcode.
func (s *Store) AddItem(ctx context.Context, draft ItemDraft) (model.Item, error) {
	now := s.now()
	item := model.Item{
		ID:            s.newID(),
		Barcode:       s.newBarcode(),
		Name:          strings.TrimSpace(draft.Name),
		Type:          strings.TrimSpace(draft.Type),
		Department:    strings.TrimSpace(draft.Department),
		HasExpiry:     draft.HasExpiry,
		ExpiryDays:    draft.ExpiryDays,
		Image:         draft.Image,
		PricePerPiece: draft.PricePerPiece,
		CurrentStock:  draft.CurrentStock,
		LowStockAlert: draft.LowStockAlert,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if !item.HasExpiry {
		item.ExpiryDays = 0
	}
	if err := validateItem(item); err != nil {
		return model.Item{}, err
	}

	s.items = append(s.items, item)
	s.save(ctx, KeyItems)
	return item, nil
}

// UpdateItem applies patch to the item with the given id and bumps its
// updatedAt. A missing id is not an error: nothing changes and found is false.
// The id and barcode are never changed.
func (s *Store) UpdateItem(ctx context.Context, id string, patch ItemPatch) (found bool, err error) {
	i := s.indexOfItem(id)
	if i < 0 {
		return false, nil
	}

	item := s.items[i]
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Type != nil {
		item.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.Department != nil {
		item.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.HasExpiry != nil {
		item.HasExpiry = *patch.HasExpiry
	}
	if patch.ExpiryDays != nil {
		item.ExpiryDays = *patch.ExpiryDays
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.PricePerPiece != nil {
		item.PricePerPiece = *patch.PricePerPiece
	}
	if patch.CurrentStock != nil {
		item.CurrentStock = *patch.CurrentStock
	}
	if patch.LowStockAlert != nil {
		item.LowStockAlert = *patch.LowStockAlert
	}
	if !item.HasExpiry {
		item.ExpiryDays = 0
	}
	if err := validateItem(item); err != nil {
		return true, err
	}

	item.UpdatedAt = s.now()
	s.items[i] = item
	s.save(ctx, KeyItems)
	return true, nil
}

// DeleteItem removes the item and every transaction that references it.
// It reports whether the item existed.
func (s *Store) DeleteItem(ctx context.Context, id string) bool {
	i := s.indexOfItem(id)
	if i < 0 {
		return false
	}

	items := make([]model.Item, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)

	transactions := make([]model.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.ItemID != id {
			transactions = append(transactions, t)
		}
	}

	s.items = items
	s.transactions = transactions
	s.save(ctx, KeyItems, KeyTransactions)
	return true
}

// Item returns the item with the given id.
func (s *Store) Item(id string) (model.Item, bool) {
	i := s.indexOfItem(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// FindItemByBarcode returns the item whose barcode equals code with
// surrounding whitespace removed.
func (s *Store) FindItemByBarcode(code string) (model.Item, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Item{}, false
	}
	for _, item := range s.items {
		if item.Barcode == code {
			return item, true
		}
	}
	return model.Item{}, false
}

func (s *Store) indexOfItem(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// newBarcode derives a barcode from a fresh id, retrying on the
// (unlikely) collision with an existing barcode.
func (s *Store) newBarcode() string {
	for {
		raw := strings.ToUpper(strings.ReplaceAll(s.newID(), "-", ""))
		if len(raw) > 12 {
			raw = raw[len(raw)-12:]
		}
		code := barcodePrefix + raw
		if _, taken := s.FindItemByBarcode(code); !taken {
			return code
		}
	}
}

func validateItem(item model.Item) error {
	switch {
	case item.Name == "":
		return invalidInput("name is required")
	case item.Type == "":
		return invalidInput("type is required")
	case item.Department == "":
		return invalidInput("department is required")
	case item.HasExpiry && item.ExpiryDays <= 0:
		return invalidInput("expiry days must be positive for items that expire")
	case item.PricePerPiece.IsNegative():
		return invalidInput("price per piece must not be negative")
	case item.CurrentStock < 0:
		return invalidInput("current stock must not be negative")
	case item.LowStockAlert < 0:
		return invalidInput("low stock alert must not be negative")
	}
	return nil
}
