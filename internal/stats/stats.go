// Package stats derives dashboard figures from inventory snapshots.
// All functions are pure and operate on the slices returned by the store.
package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/model"
)

// Summary holds the headline dashboard numbers.
type Summary struct {
	TotalItems     int
	TotalStock     int
	TotalValue     decimal.Decimal
	CriticalAlerts int
	LowStockItems  int
}

// Summarize computes the dashboard summary.
func Summarize(items []model.Item, alerts []model.ExpiryAlert) Summary {
	s := Summary{TotalItems: len(items), TotalValue: decimal.Zero}
	for _, item := range items {
		s.TotalStock += item.CurrentStock
		s.TotalValue = s.TotalValue.Add(item.Value())
		if item.IsLowStock() {
			s.LowStockItems++
		}
	}
	for _, a := range alerts {
		if a.Status == model.AlertCritical {
			s.CriticalAlerts++
		}
	}
	return s
}

// MonthMovement is the stock moved in and out during one calendar month.
type MonthMovement struct {
	Month    time.Month
	StockIn  int
	StockOut int
}

// MonthlyMovement returns twelve entries, January to December, summing the
// transaction quantities of the given year in loc.
func MonthlyMovement(transactions []model.Transaction, year int, loc *time.Location) []MonthMovement {
	months := make([]MonthMovement, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1)
	}
	for _, t := range transactions {
		date := t.Date.In(loc)
		if date.Year() != year {
			continue
		}
		m := &months[date.Month()-1]
		switch t.Type {
		case model.TransactionIn:
			m.StockIn += t.Quantity
		case model.TransactionOut:
			m.StockOut += t.Quantity
		}
	}
	return months
}

// DepartmentSpend is the value of stock taken out by one department.
type DepartmentSpend struct {
	Department string
	Value      decimal.Decimal
}

// DepartmentSpending values every stock-out at the item's current price and
// totals it per department, in department order. Departments that spent
// nothing are omitted.
func DepartmentSpending(departments []model.Department, items []model.Item, transactions []model.Transaction) []DepartmentSpend {
	byID := make(map[string]model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	perDept := map[string]decimal.Decimal{}
	for _, t := range transactions {
		if t.Type != model.TransactionOut {
			continue
		}
		item, ok := byID[t.ItemID]
		if !ok {
			continue
		}
		value := item.PricePerPiece.Mul(decimal.NewFromInt(int64(t.Quantity)))
		perDept[item.Department] = perDept[item.Department].Add(value)
	}

	var result []DepartmentSpend
	for _, d := range departments {
		if v := perDept[d.Name]; v.IsPositive() {
			result = append(result, DepartmentSpend{Department: d.Name, Value: v})
		}
	}
	return result
}

// SearchItems returns the items whose name, type or department contains
// query, ignoring case. An empty query matches everything.
func SearchItems(items []model.Item, query string) []model.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var result []model.Item
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Type), query) ||
			strings.Contains(strings.ToLower(item.Department), query) {
			result = append(result, item)
		}
	}
	return result
}

// TransactionView is a transaction joined with its item.
type TransactionView struct {
	model.Transaction
	ItemName   string
	ItemType   string
	Department string
}

// UnknownItem is shown for transactions whose item no longer exists.
const UnknownItem = "Unknown"

// JoinTransactions attaches item details to each transaction of the given
// type, keeping transaction order. An empty type keeps all transactions.
func JoinTransactions(transactions []model.Transaction, items []model.Item, typ model.TransactionType) []TransactionView {
	byID := make(map[string]model.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var result []TransactionView
	for _, t := range transactions {
		if typ != "" && t.Type != typ {
			continue
		}
		v := TransactionView{Transaction: t, ItemName: UnknownItem, ItemType: UnknownItem, Department: UnknownItem}
		if item, ok := byID[t.ItemID]; ok {
			v.ItemName = item.Name
			v.ItemType = item.Type
			v.Department = item.Department
		}
		result = append(result, v)
	}
	return result
}

// RecentTransactions returns at most limit transactions of the given type,
// newest first.
func RecentTransactions(transactions []model.Transaction, items []model.Item, typ model.TransactionType, limit int) []TransactionView {
	views := JoinTransactions(transactions, items, typ)
	slices.SortStableFunc(views, func(a, b TransactionView) int {
		return b.Date.Compare(a.Date)
	})
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views
}
