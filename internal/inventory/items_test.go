package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAddItem(t *testing.T) {
	s, p, _ := newTestStore(t)

	item := mustAddItem(t, s, penDraft())

	if item.ID == "" {
		t.Error("expected non-empty id")
	}
	if !strings.HasPrefix(item.Barcode, barcodePrefix) {
		t.Errorf("expected barcode with prefix %q, got %q", barcodePrefix, item.Barcode)
	}
	if !item.CreatedAt.Equal(testNow) || !item.UpdatedAt.Equal(testNow) {
		t.Errorf("expected timestamps %v, got created %v updated %v", testNow, item.CreatedAt, item.UpdatedAt)
	}
	if item.CurrentStock != 10 || !item.PricePerPiece.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("unexpected item fields: %+v", item)
	}
	if p.saves[KeyItems] != 1 {
		t.Errorf("expected items saved once, got %d", p.saves[KeyItems])
	}
}

func TestAddItemUniqueIdentifiers(t *testing.T) {
	s, err := Open(context.Background(), newMemPersister())
	if err != nil {
		t.Fatal(err)
	}

	ids := map[string]bool{}
	barcodes := map[string]bool{}
	for range 200 {
		item := mustAddItem(t, s, penDraft())
		if ids[item.ID] {
			t.Fatalf("duplicate id %q", item.ID)
		}
		if barcodes[item.Barcode] {
			t.Fatalf("duplicate barcode %q", item.Barcode)
		}
		ids[item.ID] = true
		barcodes[item.Barcode] = true
	}
}

func TestAddItemClearsExpiryDaysWithoutExpiry(t *testing.T) {
	s, _, _ := newTestStore(t)

	draft := penDraft()
	draft.ExpiryDays = 30
	item := mustAddItem(t, s, draft)

	if item.ExpiryDays != 0 {
		t.Errorf("expected expiry days 0 for item without expiry, got %d", item.ExpiryDays)
	}
}

func TestAddItemInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ItemDraft)
	}{
		{"missing name", func(d *ItemDraft) { d.Name = "  " }},
		{"missing type", func(d *ItemDraft) { d.Type = "" }},
		{"missing department", func(d *ItemDraft) { d.Department = "" }},
		{"expiry without days", func(d *ItemDraft) { d.HasExpiry = true; d.ExpiryDays = 0 }},
		{"negative price", func(d *ItemDraft) { d.PricePerPiece = decimal.NewFromInt(-1) }},
		{"negative stock", func(d *ItemDraft) { d.CurrentStock = -1 }},
		{"negative threshold", func(d *ItemDraft) { d.LowStockAlert = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p, _ := newTestStore(t)
			draft := penDraft()
			tt.modify(&draft)

			_, err := s.AddItem(context.Background(), draft)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(s.Items()) != 0 {
				t.Errorf("expected no items after rejected add, got %d", len(s.Items()))
			}
			if p.saves[KeyItems] != 0 {
				t.Errorf("expected no save after rejected add, got %d", p.saves[KeyItems])
			}
		})
	}
}

func TestUpdateItem(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()
	item := mustAddItem(t, s, penDraft())

	clock.Advance(2 * time.Hour)
	name := "Blue Pen"
	price := decimal.RequireFromString("2.25")
	found, err := s.UpdateItem(ctx, item.ID, ItemPatch{Name: &name, PricePerPiece: &price})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if !found {
		t.Fatal("expected item to be found")
	}

	got, _ := s.Item(item.ID)
	if got.Name != "Blue Pen" {
		t.Errorf("expected name 'Blue Pen', got %q", got.Name)
	}
	if !got.PricePerPiece.Equal(price) {
		t.Errorf("expected price %s, got %s", price, got.PricePerPiece)
	}
	if got.ID != item.ID || got.Barcode != item.Barcode {
		t.Error("expected id and barcode to be unchanged")
	}
	if !got.UpdatedAt.Equal(clock.Now()) {
		t.Errorf("expected updatedAt %v, got %v", clock.Now(), got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(item.CreatedAt) {
		t.Error("expected createdAt to be unchanged")
	}
	if got.Department != "Admin" {
		t.Errorf("expected untouched department Admin, got %q", got.Department)
	}
}

func TestUpdateItemMissingIsNoOp(t *testing.T) {
	s, p, _ := newTestStore(t)
	mustAddItem(t, s, penDraft())
	saves := p.saves[KeyItems]

	name := "Ghost"
	found, err := s.UpdateItem(context.Background(), "does-not-exist", ItemPatch{Name: &name})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found {
		t.Error("expected found to be false")
	}
	if p.saves[KeyItems] != saves {
		t.Error("expected no save for missing item")
	}
}

func TestUpdateItemRejectsInvalidResult(t *testing.T) {
	s, _, _ := newTestStore(t)
	item := mustAddItem(t, s, penDraft())

	stock := -4
	found, err := s.UpdateItem(context.Background(), item.ID, ItemPatch{CurrentStock: &stock})
	if !found {
		t.Error("expected item to be found")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	got, _ := s.Item(item.ID)
	if !sameItem(got, item) {
		t.Errorf("expected item unchanged, got %+v", got)
	}
}

func TestUpdateItemTogglesExpiry(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	draft := penDraft()
	draft.HasExpiry = true
	draft.ExpiryDays = 90
	item := mustAddItem(t, s, draft)

	off := false
	if _, err := s.UpdateItem(ctx, item.ID, ItemPatch{HasExpiry: &off}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Item(item.ID)
	if got.HasExpiry || got.ExpiryDays != 0 {
		t.Errorf("expected expiry cleared, got hasExpiry=%v expiryDays=%d", got.HasExpiry, got.ExpiryDays)
	}

	on := true
	if _, err := s.UpdateItem(ctx, item.ID, ItemPatch{HasExpiry: &on}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput when enabling expiry without days, got %v", err)
	}
}

func TestDeleteItemCascades(t *testing.T) {
	s, p, _ := newTestStore(t)
	ctx := context.Background()

	pen := mustAddItem(t, s, penDraft())
	other := penDraft()
	other.Name = "Stapler"
	stapler := mustAddItem(t, s, other)

	for _, id := range []string{pen.ID, stapler.ID, pen.ID} {
		if _, err := s.AddTransaction(ctx, TransactionDraft{ItemID: id, Type: "in", Quantity: 1}); err != nil {
			t.Fatal(err)
		}
	}

	if !s.DeleteItem(ctx, pen.ID) {
		t.Fatal("expected delete to report the item as found")
	}

	if _, ok := s.Item(pen.ID); ok {
		t.Error("expected deleted item to be gone")
	}
	for _, tr := range s.Transactions() {
		if tr.ItemID == pen.ID {
			t.Errorf("expected no transactions for deleted item, found %s", tr.ID)
		}
	}
	if len(s.Transactions()) != 1 {
		t.Errorf("expected 1 remaining transaction, got %d", len(s.Transactions()))
	}
	if len(s.Items()) != 1 || s.Items()[0].ID != stapler.ID {
		t.Errorf("expected only the stapler to remain, got %v", s.Items())
	}

	reopened, err := Open(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(reopened.Items()) != 1 || len(reopened.Transactions()) != 1 {
		t.Errorf("expected persisted cascade, got %d items and %d transactions",
			len(reopened.Items()), len(reopened.Transactions()))
	}
}

func TestDeleteItemMissing(t *testing.T) {
	s, p, _ := newTestStore(t)

	if s.DeleteItem(context.Background(), "nope") {
		t.Error("expected delete of missing item to report false")
	}
	if p.saves[KeyItems] != 0 || p.saves[KeyTransactions] != 0 {
		t.Error("expected no saves for missing item")
	}
}

func TestFindItemByBarcode(t *testing.T) {
	s, _, _ := newTestStore(t)
	pen := mustAddItem(t, s, penDraft())
	mustAddItem(t, s, ItemDraft{Name: "Soap", Type: "Cleaning Supplies", Department: "HR"})

	tests := []struct {
		name  string
		input string
		found bool
	}{
		{"exact", pen.Barcode, true},
		{"surrounding whitespace", "  " + pen.Barcode + "\n", true},
		{"lowercase", strings.ToLower(pen.Barcode), false},
		{"prefix only", barcodePrefix, false},
		{"empty", "   ", false},
	}

	for _, tt := range tests {
		got, ok := s.FindItemByBarcode(tt.input)
		if ok != tt.found {
			t.Errorf("%s: expected found=%v, got %v", tt.name, tt.found, ok)
			continue
		}
		if ok && !sameItem(got, pen) {
			t.Errorf("%s: expected the pen, got %+v", tt.name, got)
		}
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	s, _, _ := newTestStore(t)
	mustAddItem(t, s, penDraft())

	items := s.Items()
	items[0].CurrentStock = 999

	got := s.Items()
	if got[0].CurrentStock != 10 {
		t.Errorf("expected store to be unaffected by caller edits, got stock %d", got[0].CurrentStock)
	}
}
