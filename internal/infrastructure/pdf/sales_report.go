// Package pdf implementa la generación del reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: BeansHub + período del reporte                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Cliente | Producto | Kg | Precio | Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: kilos vendidos / facturación del período           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/pkg/currency"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 111, Green: 78, Blue: 55}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// SalesReportGenerator genera el reporte de ventas usando Maroto v2.
type SalesReportGenerator struct{}

// NewSalesReportGenerator construye el generador.
func NewSalesReportGenerator() *SalesReportGenerator { return &SalesReportGenerator{} }

// Generate produce el PDF con las ventas recibidas (se asumen ya ordenadas,
// más recientes primero) y devuelve sus bytes.
func (g *SalesReportGenerator) Generate(sales []entity.Sale, period string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Penjualan BeansHub", true).
		WithAuthor("BeansHub", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range saleRows(sales) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sales))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la tostaduría (izq) y período (der).
func headerRow(period string) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("BeansHub Coffee Roastery", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Laporan Penjualan", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Periode: "+period, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ventas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Cliente", 3, align.Left),
		h("Producto", 3, align.Left),
		h("Kg", 1, align.Right),
		h("Precio/Kg", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// saleRows: una fila por venta.
func saleRows(sales []entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				s.SaleDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.CustomerName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%g", s.QuantityKg),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				currency.FormatIDR(s.PricePerKg),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				currency.FormatIDR(s.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: kilos y facturación acumulados del período.
func totalsRow(sales []entity.Sale) core.Row {
	var kg float64
	total := decimal.Zero
	for _, s := range sales {
		kg += s.QuantityKg
		total = total.Add(decimal.NewFromFloat(s.Total))
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(18).Add(
		col.New(5),
		col.New(4).Add(
			label(fmt.Sprintf("Total terjual: %g kg", kg)),
			label("TOTAL PENJUALAN:"),
		),
		col.New(3).Add(
			text.New("", props.Text{Size: 9}),
			grandValue(currency.FormatIDRDecimal(total)),
		),
	)
}
