package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestItemValue(t *testing.T) {
	item := Item{PricePerPiece: decimal.RequireFromString("1.5"), CurrentStock: 4}
	if !item.Value().Equal(decimal.NewFromInt(6)) {
		t.Errorf("expected value 6, got %s", item.Value())
	}
}

func TestItemExpiresAt(t *testing.T) {
	updated := time.Date(2024, 1, 30, 9, 0, 0, 0, time.UTC)

	if _, ok := (Item{UpdatedAt: updated}).ExpiresAt(); ok {
		t.Error("expected no expiry date for item without expiry tracking")
	}

	item := Item{HasExpiry: true, ExpiryDays: 30, UpdatedAt: updated}
	got, ok := item.ExpiresAt()
	if !ok {
		t.Fatal("expected expiry date")
	}
	want := time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestItemExpiresAtRequiresExpiryDays(t *testing.T) {
	item := Item{HasExpiry: true, UpdatedAt: time.Date(2024, 1, 30, 9, 0, 0, 0, time.UTC)}
	if _, ok := item.ExpiresAt(); ok {
		t.Error("expected no expiry date for item without expiry days")
	}
}
