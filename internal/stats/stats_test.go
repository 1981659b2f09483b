package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/model"
)

func fixture() ([]model.Department, []model.Item, []model.Transaction) {
	depts := []model.Department{{ID: "d1", Name: "Admin"}, {ID: "d2", Name: "IT"}, {ID: "d3", Name: "HR"}}
	items := []model.Item{
		{ID: "pen", Name: "Pen", Type: "Stationery", Department: "Admin", PricePerPiece: decimal.RequireFromString("1.50"), CurrentStock: 3, LowStockAlert: 3},
		{ID: "toner", Name: "Toner", Type: "Stationery", Department: "IT", PricePerPiece: decimal.RequireFromString("120"), CurrentStock: 2, LowStockAlert: 1},
		{ID: "soap", Name: "Hand Soap", Type: "Cleaning Supplies", Department: "Admin", PricePerPiece: decimal.RequireFromString("4.25"), CurrentStock: 10, LowStockAlert: 2},
	}
	at := func(month time.Month, day int) time.Time { return time.Date(2024, month, day, 10, 0, 0, 0, time.UTC) }
	txs := []model.Transaction{
		{ID: "t1", ItemID: "pen", Type: model.TransactionIn, Quantity: 5, Date: at(time.January, 3)},
		{ID: "t2", ItemID: "pen", Type: model.TransactionOut, Quantity: 12, PICName: "Alice", Date: at(time.January, 20)},
		{ID: "t3", ItemID: "toner", Type: model.TransactionOut, Quantity: 1, PICName: "Bob", Date: at(time.March, 2)},
		{ID: "t4", ItemID: "soap", Type: model.TransactionOut, Quantity: 2, PICName: "Alice", Date: at(time.March, 9)},
		{ID: "t5", ItemID: "gone", Type: model.TransactionOut, Quantity: 7, PICName: "Eve", Date: at(time.March, 10)},
		{ID: "t6", ItemID: "pen", Type: model.TransactionIn, Quantity: 4, Date: time.Date(2023, time.December, 31, 10, 0, 0, 0, time.UTC)},
	}
	return depts, items, txs
}

func TestSummarize(t *testing.T) {
	_, items, _ := fixture()
	alerts := []model.ExpiryAlert{
		{Status: model.AlertCritical}, {Status: model.AlertWarning}, {Status: model.AlertCritical},
	}

	s := Summarize(items, alerts)

	if s.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", s.TotalItems)
	}
	if s.TotalStock != 15 {
		t.Errorf("expected stock 15, got %d", s.TotalStock)
	}
	// 3*1.50 + 2*120 + 10*4.25 = 4.5 + 240 + 42.5
	if !s.TotalValue.Equal(decimal.RequireFromString("287")) {
		t.Errorf("expected value 287, got %s", s.TotalValue)
	}
	if s.CriticalAlerts != 2 {
		t.Errorf("expected 2 critical alerts, got %d", s.CriticalAlerts)
	}
	if s.LowStockItems != 1 {
		t.Errorf("expected 1 low-stock item, got %d", s.LowStockItems)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s.TotalItems != 0 || s.TotalStock != 0 || !s.TotalValue.IsZero() {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestMonthlyMovement(t *testing.T) {
	_, _, txs := fixture()

	months := MonthlyMovement(txs, 2024, time.UTC)
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}

	tests := []struct {
		month   time.Month
		in, out int
	}{
		{time.January, 5, 12},
		{time.February, 0, 0},
		{time.March, 0, 10},
		{time.December, 0, 0},
	}
	for _, tt := range tests {
		m := months[tt.month-1]
		if m.Month != tt.month || m.StockIn != tt.in || m.StockOut != tt.out {
			t.Errorf("%s: expected in=%d out=%d, got %+v", tt.month, tt.in, tt.out, m)
		}
	}

	prev := MonthlyMovement(txs, 2023, time.UTC)
	if prev[11].StockIn != 4 {
		t.Errorf("expected 4 in for Dec 2023, got %d", prev[11].StockIn)
	}
}

func TestMonthlyMovementUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	txs := []model.Transaction{
		{Type: model.TransactionIn, Quantity: 3, Date: time.Date(2023, time.December, 31, 20, 0, 0, 0, time.UTC)},
	}

	months := MonthlyMovement(txs, 2024, loc)
	if months[0].StockIn != 3 {
		t.Errorf("expected transaction to fall in January 2024 local time, got %+v", months[0])
	}
}

func TestDepartmentSpending(t *testing.T) {
	depts, items, txs := fixture()

	got := DepartmentSpending(depts, items, txs)

	// Admin: 12*1.50 + 2*4.25 = 26.5, IT: 1*120, HR: nothing.
	want := []struct {
		dept  string
		value string
	}{
		{"Admin", "26.5"},
		{"IT", "120"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d departments, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Department != w.dept || !got[i].Value.Equal(decimal.RequireFromString(w.value)) {
			t.Errorf("entry %d: expected %s=%s, got %s=%s", i, w.dept, w.value, got[i].Department, got[i].Value)
		}
	}
}

func TestSearchItems(t *testing.T) {
	_, items, _ := fixture()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Pen", "Toner", "Hand Soap"}},
		{"pen", []string{"Pen"}},
		{"STATIONERY", []string{"Pen", "Toner"}},
		{" admin ", []string{"Pen", "Hand Soap"}},
		{"cleaning", []string{"Hand Soap"}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		got := SearchItems(items, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("SearchItems(%q): expected %d results, got %d", tt.query, len(tt.want), len(got))
			continue
		}
		for i, name := range tt.want {
			if got[i].Name != name {
				t.Errorf("SearchItems(%q)[%d]: expected %q, got %q", tt.query, i, name, got[i].Name)
			}
		}
	}
}

func TestRecentTransactions(t *testing.T) {
	_, items, txs := fixture()

	got := RecentTransactions(txs, items, model.TransactionOut, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}

	wantIDs := []string{"t5", "t4", "t3"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if got[0].ItemName != UnknownItem || got[0].Department != UnknownItem {
		t.Errorf("expected Unknown for deleted item, got %q/%q", got[0].ItemName, got[0].Department)
	}
	if got[1].ItemName != "Hand Soap" || got[1].ItemType != "Cleaning Supplies" {
		t.Errorf("expected joined soap details, got %+v", got[1])
	}

	all := RecentTransactions(txs, items, model.TransactionIn, 0)
	if len(all) != 2 || all[0].ID != "t1" || all[1].ID != "t6" {
		t.Errorf("expected t1 then t6, got %+v", all)
	}
}
