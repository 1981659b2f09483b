package main

import (
	"context"
	"fmt"
)

func (a *app) cmdAlerts(_ context.Context, args []string) error {
	sub, _, err := subcommand(args, "alerts expiry|lowstock")
	if err != nil {
		return err
	}

	switch sub {
	case "expiry":
		alerts := a.inv.ExpiryAlerts()
		if len(alerts) == 0 {
			fmt.Fprintln(a.out, "No items expire in the next 60 days.")
			return nil
		}
		tw := newTable(a.out)
		fmt.Fprintln(tw, "STATUS\tDAYS LEFT\tBARCODE\tNAME\tDEPARTMENT\tSTOCK")
		for _, alert := range alerts {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\n",
				alert.Status, alert.DaysLeft, alert.Item.Barcode, alert.Item.Name, alert.Item.Department, alert.Item.CurrentStock)
		}
		return tw.Flush()

	case "lowstock":
		items := a.inv.LowStockAlerts()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No items are low on stock.")
			return nil
		}
		tw := newTable(a.out)
		fmt.Fprintln(tw, "BARCODE\tNAME\tDEPARTMENT\tSTOCK\tALERT")
		for _, item := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
				item.Barcode, item.Name, item.Department, item.CurrentStock, item.LowStockAlert)
		}
		return tw.Flush()

	default:
		return fmt.Errorf("unknown alerts command %q, usage: zaloga alerts expiry|lowstock", sub)
	}
}
