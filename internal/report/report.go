// Package report renders inventory reports as CSV files or as sheets of an
// XLSX workbook.
package report

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/stats"
)

// DateLayout is how transaction dates appear in reports.
const DateLayout = "2006-01-02"

// Report is a titled table. Cells hold string, int or decimal.Decimal values.
type Report struct {
	Title    string
	FileName string
	Headers  []string
	Rows     [][]any
}

// LowStock lists items at or below their threshold.
func LowStock(items []model.Item) Report {
	r := Report{
		Title:    "Low Stock",
		FileName: "low-stock-report.csv",
		Headers:  []string{"name", "type", "department", "currentStock", "lowStockAlert", "pricePerPiece"},
	}
	for _, item := range items {
		r.Rows = append(r.Rows, []any{
			item.Name, item.Type, item.Department,
			item.CurrentStock, item.LowStockAlert, item.PricePerPiece,
		})
	}
	return r
}

// Expiry lists expiry alerts in the order given.
func Expiry(alerts []model.ExpiryAlert) Report {
	r := Report{
		Title:    "Expiry",
		FileName: "expiry-report.csv",
		Headers:  []string{"name", "type", "department", "daysLeft", "status", "expiryDays", "currentStock"},
	}
	for _, a := range alerts {
		r.Rows = append(r.Rows, []any{
			a.Item.Name, a.Item.Type, a.Item.Department,
			a.DaysLeft, string(a.Status), a.Item.ExpiryDays, a.Item.CurrentStock,
		})
	}
	return r
}

// StockIn lists stock-in transactions. Dates are shown in loc.
func StockIn(views []stats.TransactionView, loc *time.Location) Report {
	r := Report{
		Title:    "Stock In",
		FileName: "stock-in-report.csv",
		Headers:  []string{"itemName", "itemType", "department", "quantity", "date", "notes"},
	}
	for _, v := range views {
		if v.Type != model.TransactionIn {
			continue
		}
		r.Rows = append(r.Rows, []any{
			v.ItemName, v.ItemType, v.Department,
			v.Quantity, v.Date.In(loc).Format(DateLayout), v.Notes,
		})
	}
	return r
}

// StockOut lists stock-out transactions with the person in charge.
func StockOut(views []stats.TransactionView, loc *time.Location) Report {
	r := Report{
		Title:    "Stock Out",
		FileName: "stock-out-report.csv",
		Headers:  []string{"itemName", "itemType", "department", "quantity", "picName", "date", "notes"},
	}
	for _, v := range views {
		if v.Type != model.TransactionOut {
			continue
		}
		r.Rows = append(r.Rows, []any{
			v.ItemName, v.ItemType, v.Department,
			v.Quantity, v.PICName, v.Date.In(loc).Format(DateLayout), v.Notes,
		})
	}
	return r
}

func formatCell(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case decimal.Decimal:
		return v.StringFixed(2)
	default:
		return ""
	}
}
