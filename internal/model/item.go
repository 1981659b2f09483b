package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a trackable consumable.
// Type and Department reference an ItemType and a Department by name.
type Item struct {
	ID            string          `json:"id"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Department    string          `json:"department"`
	HasExpiry     bool            `json:"hasExpiry"`
	ExpiryDays    int             `json:"expiryDays,omitempty"`
	Image         string          `json:"image,omitempty"`
	PricePerPiece decimal.Decimal `json:"pricePerPiece"`
	CurrentStock  int             `json:"currentStock"`
	LowStockAlert int             `json:"lowStockAlert"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Value returns the stock value of the item (stock x price).
func (i Item) Value() decimal.Decimal {
	return i.PricePerPiece.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}

// IsLowStock reports whether the item is at or below its alert threshold.
func (i Item) IsLowStock() bool {
	return i.CurrentStock <= i.LowStockAlert
}

// ExpiresAt returns the expiry date, counted in calendar days from the last update.
// The second return value is false for items without expiry tracking or
// without a positive number of expiry days.
func (i Item) ExpiresAt() (time.Time, bool) {
	if !i.HasExpiry || i.ExpiryDays <= 0 {
		return time.Time{}, false
	}
	return i.UpdatedAt.UTC().AddDate(0, 0, i.ExpiryDays), true
}
