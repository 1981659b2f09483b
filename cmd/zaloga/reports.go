package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erazemk/zaloga/internal/report"
	"github.com/erazemk/zaloga/internal/stats"
)

const reportUsage = "report lowstock|expiry|stockin|stockout [-o file.csv] | report xlsx [-o file.xlsx]"

// cmdReport writes a CSV report, or all reports as one XLSX workbook.
// An output of "-" writes to stdout.
func (a *app) cmdReport(_ context.Context, args []string) error {
	sub, args, err := subcommand(args, reportUsage)
	if err != nil {
		return err
	}

	fs := a.flags("report "+sub, reportUsage)
	var output string
	fs.StringVar(&output, "o", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	views := stats.JoinTransactions(a.inv.Transactions(), a.inv.Items(), "")
	reports := map[string]report.Report{
		"lowstock": report.LowStock(a.inv.LowStockAlerts()),
		"expiry":   report.Expiry(a.inv.ExpiryAlerts()),
		"stockin":  report.StockIn(views, time.Local),
		"stockout": report.StockOut(views, time.Local),
	}

	var buf bytes.Buffer
	if sub == "xlsx" {
		if output == "" {
			output = "inventory-report.xlsx"
		}
		if output == "-" {
			return errors.New("a workbook cannot be written to stdout")
		}
		err = report.WriteXLSX(&buf,
			reports["lowstock"], reports["expiry"], reports["stockin"], reports["stockout"])
	} else {
		r, ok := reports[sub]
		if !ok {
			return fmt.Errorf("unknown report %q, usage: zaloga %s", sub, reportUsage)
		}
		if output == "" {
			output = r.FileName
		}
		err = report.WriteCSV(&buf, r)
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := io.Copy(a.out, &buf)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(a.out, "Wrote %s.\n", output)
	return nil
}
