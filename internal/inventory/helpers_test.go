package inventory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/model"
)

// memPersister keeps collections in a map and counts saves per key.
type memPersister struct {
	data  map[string][]byte
	saves map[string]int
}

func newMemPersister() *memPersister {
	return &memPersister{data: map[string][]byte{}, saves: map[string]int{}}
}

func (m *memPersister) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *memPersister) Save(_ context.Context, key string, data []byte) error {
	m.data[key] = append([]byte(nil), data...)
	m.saves[key]++
	return nil
}

// testClock is a settable time source.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}
}

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *memPersister, *testClock) {
	t.Helper()

	p := newMemPersister()
	clock := &testClock{now: testNow}
	s, err := Open(context.Background(), p, WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, p, clock
}

func penDraft() ItemDraft {
	return ItemDraft{
		Name:          "Pen",
		Type:          "Stationery",
		Department:    "Admin",
		PricePerPiece: decimal.RequireFromString("1.5"),
		CurrentStock:  10,
		LowStockAlert: 3,
	}
}

func mustAddItem(t *testing.T, s *Store, draft ItemDraft) model.Item {
	t.Helper()

	item, err := s.AddItem(context.Background(), draft)
	if err != nil {
		t.Fatalf("AddItem(%q): %v", draft.Name, err)
	}
	return item
}

func sameItem(a, b model.Item) bool {
	return a.ID == b.ID &&
		a.Barcode == b.Barcode &&
		a.Name == b.Name &&
		a.Type == b.Type &&
		a.Department == b.Department &&
		a.HasExpiry == b.HasExpiry &&
		a.ExpiryDays == b.ExpiryDays &&
		a.Image == b.Image &&
		a.PricePerPiece.Equal(b.PricePerPiece) &&
		a.CurrentStock == b.CurrentStock &&
		a.LowStockAlert == b.LowStockAlert &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}
