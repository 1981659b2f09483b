package main

import (
	"context"
	"fmt"
	"time"

	"github.com/erazemk/zaloga/internal/stats"
)

func (a *app) cmdDashboard(_ context.Context, args []string) error {
	fs := a.flags("dashboard", "dashboard [-year N]")
	var year int
	fs.IntVar(&year, "year", time.Now().Year(), "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items := a.inv.Items()
	transactions := a.inv.Transactions()
	summary := stats.Summarize(items, a.inv.ExpiryAlerts())

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Total items:\t%d\n", summary.TotalItems)
	fmt.Fprintf(tw, "Total stock:\t%d\n", summary.TotalStock)
	fmt.Fprintf(tw, "Total value:\t%s %s\n", a.cfg.Currency, summary.TotalValue.StringFixed(2))
	fmt.Fprintf(tw, "Critical expiry alerts:\t%d\n", summary.CriticalAlerts)
	fmt.Fprintf(tw, "Low stock items:\t%d\n", summary.LowStockItems)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nStock movement in %d:\n", year)
	tw = newTable(a.out)
	fmt.Fprintln(tw, "MONTH\tIN\tOUT")
	for _, m := range stats.MonthlyMovement(transactions, year, time.Local) {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", m.Month.String()[:3], m.StockIn, m.StockOut)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	spending := stats.DepartmentSpending(a.inv.Departments(), items, transactions)
	if len(spending) == 0 {
		return nil
	}
	fmt.Fprintln(a.out, "\nSpending by department:")
	tw = newTable(a.out)
	for _, s := range spending {
		fmt.Fprintf(tw, "%s\t%s %s\n", s.Department, a.cfg.Currency, s.Value.StringFixed(2))
	}
	return tw.Flush()
}
