package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erazemk/zaloga/internal/imaging"
	"github.com/erazemk/zaloga/internal/inventory"
	"github.com/erazemk/zaloga/internal/label"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/stats"
)

const itemUsage = "item list|show|add|update|delete|find|search|label|image"

func (a *app) cmdItem(ctx context.Context, args []string) error {
	sub, args, err := subcommand(args, itemUsage)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		return a.printItems(a.inv.Items())
	case "show":
		return a.itemShow(args)
	case "add":
		return a.itemAdd(ctx, args)
	case "update":
		return a.itemUpdate(ctx, args)
	case "delete":
		return a.itemDelete(ctx, args)
	case "find":
		return a.itemFind(args)
	case "search":
		return a.printItems(stats.SearchItems(a.inv.Items(), strings.Join(args, " ")))
	case "label":
		return a.itemLabel(args)
	case "image":
		return a.itemImage(ctx, args)
	default:
		return fmt.Errorf("unknown item command %q, usage: zaloga %s", sub, itemUsage)
	}
}

// itemFlags are the editable item fields shared by add and update.
type itemFlags struct {
	name   string
	typ    string
	dept   string
	price  string
	stock  int
	alert  int
	expiry int
	image  string
}

func (f *itemFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "")
	fs.StringVar(&f.typ, "type", "", "")
	fs.StringVar(&f.dept, "dept", "", "")
	fs.StringVar(&f.price, "price", "0", "")
	fs.IntVar(&f.stock, "stock", 0, "")
	fs.IntVar(&f.alert, "alert", 0, "")
	fs.IntVar(&f.expiry, "expiry", 0, "")
	fs.StringVar(&f.image, "image", "", "")
}

const itemFlagsUsage = "[-name s] [-type s] [-dept s] [-price n] [-stock n] [-alert n] [-expiry days] [-image file]"

func (a *app) itemAdd(ctx context.Context, args []string) error {
	fs := a.flags("item add", "item add "+itemFlagsUsage)
	var f itemFlags
	f.register(fs)
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	price, err := parsePrice(f.price)
	if err != nil {
		return err
	}
	if err := a.checkCatalog(f.typ, f.dept); err != nil {
		return err
	}

	draft := inventory.ItemDraft{
		Name:          f.name,
		Type:          f.typ,
		Department:    f.dept,
		HasExpiry:     f.expiry > 0,
		ExpiryDays:    f.expiry,
		PricePerPiece: price,
		CurrentStock:  f.stock,
		LowStockAlert: f.alert,
	}
	if f.image != "" {
		if draft.Image, err = readImage(f.image); err != nil {
			return err
		}
	}

	item, err := a.inv.AddItem(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (barcode %s).\n", item.Name, item.Barcode)
	return nil
}

func (a *app) itemUpdate(ctx context.Context, args []string) error {
	fs := a.flags("item update", "item update <id|barcode> "+itemFlagsUsage)
	var f itemFlags
	f.register(fs)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return errors.New("usage: zaloga item update <id|barcode> " + itemFlagsUsage)
	}

	item, err := a.lookupItem(positional[0])
	if err != nil {
		return err
	}

	var patch inventory.ItemPatch
	var visitErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			patch.Name = &f.name
		case "type":
			patch.Type = &f.typ
		case "dept":
			patch.Department = &f.dept
		case "price":
			price, err := parsePrice(f.price)
			if err != nil {
				visitErr = err
				return
			}
			patch.PricePerPiece = &price
		case "stock":
			patch.CurrentStock = &f.stock
		case "alert":
			patch.LowStockAlert = &f.alert
		case "expiry":
			hasExpiry := f.expiry > 0
			patch.HasExpiry = &hasExpiry
			patch.ExpiryDays = &f.expiry
		case "image":
			image, err := readImage(f.image)
			if err != nil {
				visitErr = err
				return
			}
			patch.Image = &image
		}
	})
	if visitErr != nil {
		return visitErr
	}

	typ, dept := "", ""
	if patch.Type != nil {
		typ = f.typ
	}
	if patch.Department != nil {
		dept = f.dept
	}
	if err := a.checkCatalog(typ, dept); err != nil {
		return err
	}

	if _, err := a.inv.UpdateItem(ctx, item.ID, patch); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s.\n", item.Barcode)
	return nil
}

func (a *app) itemDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: zaloga item delete <id|barcode>")
	}
	item, err := a.lookupItem(args[0])
	if err != nil {
		return err
	}

	n := len(a.inv.ItemTransactions(item.ID))
	a.inv.DeleteItem(ctx, item.ID)
	fmt.Fprintf(a.out, "Deleted %s and %d transaction(s).\n", item.Name, n)
	return nil
}

func (a *app) itemShow(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: zaloga item show <id|barcode>")
	}
	item, err := a.lookupItem(args[0])
	if err != nil {
		return err
	}
	a.printItem(item)

	txs := a.inv.ItemTransactions(item.ID)
	if len(txs) == 0 {
		return nil
	}
	fmt.Fprintln(a.out)
	tw := newTable(a.out)
	fmt.Fprintln(tw, "DATE\tTYPE\tQTY\tPIC\tNOTES")
	for _, t := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", t.Date.Local().Format("2006-01-02 15:04"), t.Type, t.Quantity, t.PICName, t.Notes)
	}
	return tw.Flush()
}

func (a *app) itemFind(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: zaloga item find <barcode>")
	}
	item, ok := a.inv.FindItemByBarcode(args[0])
	if !ok {
		return fmt.Errorf("%w: no item with barcode %s", inventory.ErrItemNotFound, strings.TrimSpace(args[0]))
	}
	a.printItem(item)
	return nil
}

func (a *app) printItem(item model.Item) {
	tw := newTable(a.out)
	fmt.Fprintf(tw, "ID:\t%s\n", item.ID)
	fmt.Fprintf(tw, "Barcode:\t%s\n", item.Barcode)
	fmt.Fprintf(tw, "Name:\t%s\n", item.Name)
	fmt.Fprintf(tw, "Type:\t%s\n", item.Type)
	fmt.Fprintf(tw, "Department:\t%s\n", item.Department)
	fmt.Fprintf(tw, "Price:\t%s %s\n", a.cfg.Currency, item.PricePerPiece.StringFixed(2))
	fmt.Fprintf(tw, "Stock:\t%d (alert at %d)\n", item.CurrentStock, item.LowStockAlert)
	fmt.Fprintf(tw, "Value:\t%s %s\n", a.cfg.Currency, item.Value().StringFixed(2))
	if expiresAt, ok := item.ExpiresAt(); ok {
		fmt.Fprintf(tw, "Expires:\t%s (%d days after last update)\n", expiresAt.Format("2006-01-02"), item.ExpiryDays)
	}
	if item.Image != "" {
		fmt.Fprintf(tw, "Image:\tyes\n")
	}
	fmt.Fprintf(tw, "Updated:\t%s\n", item.UpdatedAt.Local().Format("2006-01-02 15:04"))
	tw.Flush()
}

func (a *app) printItems(items []model.Item) error {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items.")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "BARCODE\tNAME\tTYPE\tDEPARTMENT\tSTOCK\tALERT\tPRICE\t")
	for _, item := range items {
		note := ""
		if item.IsLowStock() {
			note = "low"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			item.Barcode, item.Name, item.Type, item.Department,
			item.CurrentStock, item.LowStockAlert, item.PricePerPiece.StringFixed(2), note)
	}
	return tw.Flush()
}

func (a *app) itemLabel(args []string) error {
	fs := a.flags("item label", "item label <id|barcode>... [-o file.pdf]")
	var output string
	fs.StringVar(&output, "o", "", "")
	refs, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return errors.New("usage: zaloga item label <id|barcode>... [-o file.pdf]")
	}

	items := make([]model.Item, 0, len(refs))
	for _, ref := range refs {
		item, err := a.lookupItem(ref)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	data, err := label.PDF(items, a.cfg.Currency)
	if err != nil {
		return err
	}

	if output == "" {
		output = "labels.pdf"
		if len(items) == 1 {
			output = "label-" + items[0].Barcode + ".pdf"
		}
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing labels: %w", err)
	}
	fmt.Fprintf(a.out, "Wrote %d label(s) to %s.\n", len(items), output)
	return nil
}

// itemImage sets, clears or exports an item's picture.
func (a *app) itemImage(ctx context.Context, args []string) error {
	const usage = "item image <id|barcode> [file] [-clear] [-o file]"
	fs := a.flags("item image", usage)
	var remove bool
	var output string
	fs.BoolVar(&remove, "clear", false, "")
	fs.StringVar(&output, "o", "", "")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) == 0 || len(positional) > 2 {
		return errors.New("usage: zaloga " + usage)
	}

	item, err := a.lookupItem(positional[0])
	if err != nil {
		return err
	}

	switch {
	case output != "":
		if item.Image == "" {
			return fmt.Errorf("item %s has no image", item.Barcode)
		}
		img, err := imaging.ParseDataURL(item.Image)
		if err != nil {
			return err
		}
		if filepath.Ext(output) != img.Extension() {
			a.logger.Warn("image extension does not match content", "path", output, "mime", img.MIME)
		}
		if err := os.WriteFile(output, img.Data, 0644); err != nil {
			return fmt.Errorf("writing image: %w", err)
		}
		fmt.Fprintf(a.out, "Wrote image to %s.\n", output)
		return nil

	case remove:
		empty := ""
		if _, err := a.inv.UpdateItem(ctx, item.ID, inventory.ItemPatch{Image: &empty}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Removed image of %s.\n", item.Barcode)
		return nil

	case len(positional) == 2:
		image, err := readImage(positional[1])
		if err != nil {
			return err
		}
		if _, err := a.inv.UpdateItem(ctx, item.ID, inventory.ItemPatch{Image: &image}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Set image of %s.\n", item.Barcode)
		return nil
	}

	return errors.New("usage: zaloga " + usage)
}

// checkCatalog rejects type and department names that are not in the
// catalog. Empty names are left to item validation.
func (a *app) checkCatalog(typ, dept string) error {
	typ, dept = strings.TrimSpace(typ), strings.TrimSpace(dept)
	if typ != "" && !slices.ContainsFunc(a.inv.ItemTypes(), func(t model.ItemType) bool { return t.Name == typ }) {
		return fmt.Errorf("%w: unknown item type %q, see zaloga type list", inventory.ErrInvalidInput, typ)
	}
	if dept != "" && !slices.ContainsFunc(a.inv.Departments(), func(d model.Department) bool { return d.Name == dept }) {
		return fmt.Errorf("%w: unknown department %q, see zaloga dept list", inventory.ErrInvalidInput, dept)
	}
	return nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid price %q", inventory.ErrInvalidInput, s)
	}
	return price, nil
}

func readImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return imaging.DataURL(f)
}
