package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erazemk/zaloga/internal/inventory"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/stats"
)

const stockUsage = "stock in|out <barcode> <qty> [-pic name] [-notes text]"

// cmdStock records a stock movement for the item with the given barcode.
func (a *app) cmdStock(ctx context.Context, args []string) error {
	sub, args, err := subcommand(args, stockUsage)
	if err != nil {
		return err
	}

	typ := model.TransactionType(sub)
	if !typ.Valid() {
		return fmt.Errorf("unknown stock command %q, usage: zaloga %s", sub, stockUsage)
	}

	fs := a.flags("stock "+sub, stockUsage)
	var pic, notes string
	fs.StringVar(&pic, "pic", "", "")
	fs.StringVar(&notes, "notes", "", "")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		return errors.New("usage: zaloga " + stockUsage)
	}

	item, ok := a.inv.FindItemByBarcode(positional[0])
	if !ok {
		return fmt.Errorf("%w: no item with barcode %s", inventory.ErrItemNotFound, strings.TrimSpace(positional[0]))
	}

	qty, err := strconv.Atoi(strings.TrimSpace(positional[1]))
	if err != nil {
		return fmt.Errorf("%w: %q", inventory.ErrInvalidQuantity, positional[1])
	}

	t, err := a.inv.AddTransaction(ctx, inventory.TransactionDraft{
		ItemID:   item.ID,
		Type:     typ,
		Quantity: qty,
		PICName:  pic,
		Notes:    notes,
	})
	if err != nil {
		return err
	}

	item, _ = a.inv.Item(item.ID)
	a.logger.Info("stock moved", "item", item.ID, "type", t.Type, "quantity", t.Quantity, "user", a.user)
	fmt.Fprintf(a.out, "Stock %s: %d x %s. Current stock: %d.\n", t.Type, t.Quantity, item.Name, item.CurrentStock)
	if item.IsLowStock() {
		fmt.Fprintf(a.out, "Warning: %s is at or below its low stock alert (%d).\n", item.Name, item.LowStockAlert)
	}
	return nil
}

func (a *app) cmdHistory(_ context.Context, args []string) error {
	fs := a.flags("history", "history [-type in|out] [-n 10]")
	var typ string
	var limit int
	fs.StringVar(&typ, "type", "", "")
	fs.IntVar(&limit, "n", 10, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if typ != "" && !model.TransactionType(typ).Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", inventory.ErrInvalidInput, typ)
	}

	views := stats.RecentTransactions(a.inv.Transactions(), a.inv.Items(), model.TransactionType(typ), limit)
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No transactions.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "DATE\tTYPE\tITEM\tDEPARTMENT\tQTY\tPIC\tNOTES")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			v.Date.Local().Format("2006-01-02 15:04"), v.Type, v.ItemName, v.Department, v.Quantity, v.PICName, v.Notes)
	}
	return tw.Flush()
}
