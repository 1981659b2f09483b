// Package label renders printable barcode labels for items.
package label

import (
	"errors"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/erazemk/zaloga/internal/model"
)

// ErrNoItems is returned when there is nothing to print.
var ErrNoItems = errors.New("no items to label")

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// PDF renders one label per item on A4 pages and returns the document bytes.
// Prices are prefixed with currency.
func PDF(items []model.Item, currency string) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Item labels", true).
		Build()

	m := maroto.New(cfg)
	for _, item := range items {
		m.AddRows(labelRows(item, currency)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating labels: %w", err)
	}
	return doc.GetBytes(), nil
}

func labelRows(item model.Item, currency string) []core.Row {
	price := fmt.Sprintf("%s %s", currency, item.PricePerPiece.StringFixed(2))

	return []core.Row{
		row.New(8).Add(
			col.New(8).Add(text.New(item.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Left,
			})),
			col.New(4).Add(text.New(price, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
			})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(item.Type+" / "+item.Department, props.Text{
				Size: 9, Color: colorGray,
			})),
		),
		row.New(20).Add(
			col.New(12).Add(code.NewBar(item.Barcode, props.Barcode{Percent: 80, Center: true})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(item.Barcode, props.Text{
				Size: 9, Align: align.Center,
			})),
		),
		line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}),
	}
}
