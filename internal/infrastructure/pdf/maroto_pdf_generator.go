// Package pdf genera el recibo de venta (factura con desglose CGST/SGST) en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + GSTIN      │  N° Orden + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | P.Unit | Desc% | GST% | CGST | SGST | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuestos / TOTAL           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const currency = "Rs. "

// Store datos de la tienda impresos en el encabezado.
type Store struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator arma recibos de venta con Maroto v2.
type MarotoPDFGenerator struct {
	store Store
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(store Store) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{store: store}
}

// GenerateReceipt genera el PDF de la orden y devuelve sus bytes. names traduce product_id a
// nombre; si falta, se imprime el id.
func (g *MarotoPDFGenerator) GenerateReceipt(
	_ context.Context,
	detail *checkout.OrderDetail,
	names map[string]string,
) ([]byte, error) {
	if detail == nil || detail.Order == nil {
		return nil, fmt.Errorf("pdf: orden vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+detail.Order.ID, true).
		WithAuthor(nonEmpty(g.store.Name, "Grocery Store"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(detail))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(detail.Lines, names)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(detail))

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra. Vuelva pronto.", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + contacto (izq) y N° de orden + fecha (der).
func (g *MarotoPDFGenerator) headerRow(detail *checkout.OrderDetail) core.Row {
	contact := strings.Join(nonEmptyParts(
		g.store.Address,
		prefixed("Tel: ", g.store.Phone),
		prefixed("GSTIN: ", g.store.GSTIN),
	), "   |   ")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.store.Name, "Grocery Store"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(contact, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("#"+detail.Order.ID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+detail.Order.CreatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente de la venta o "-" si fue anónima.
func customerRow(detail *checkout.OrderDetail) core.Row {
	name, phone := "-", ""
	if detail.Customer != nil {
		name, phone = detail.Customer.Name, detail.Customer.Phone
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name+prefixed("   |   Tel: ", phone), props.Text{
				Size: 9, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Unit", 2, align.Right),
		h("Desc%", 1, align.Center),
		h("GST%", 1, align.Center),
		h("CGST", 1, align.Right),
		h("SGST", 1, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea, en el orden del carrito.
func tableDetailRows(lines []checkout.LineDetail, names map[string]string) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := names[l.Item.ProductID]
		if name == "" {
			name = l.Item.ProductID
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(name, 3, align.Left),
			cell(fmt.Sprintf("%d", l.Item.Quantity), 1, align.Center),
			cell(formatMoney(l.Item.UnitPrice), 2, align.Right),
			cell(l.Item.DiscountPct.StringFixed(2), 1, align.Center),
			cell(l.Item.GSTRate.StringFixed(2), 1, align.Center),
			cell(formatHalf(l.CGST), 1, align.Right),
			cell(formatHalf(l.SGST), 1, align.Right),
			cell(formatMoney(l.Prices.Total), 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha; el total final va resaltado.
func totalsRow(detail *checkout.OrderDetail) core.Row {
	o := detail.Order
	labels, values := []string{"Subtotal:"}, []string{formatMoney(o.GrossSubtotal)}
	if o.OrderDiscountAmount.IsPositive() {
		labels = append(labels, fmt.Sprintf("Descuento (%s%%):", o.OrderDiscountPct.StringFixed(2)), "Base gravable:")
		values = append(values, "-"+formatMoney(o.OrderDiscountAmount), formatMoney(o.Subtotal))
	}
	half := o.TaxTotal.Half()
	labels = append(labels, "CGST:", "SGST:", "TOTAL:")
	values = append(values, currency+formatHalf(half), currency+formatHalf(half), formatMoney(o.GrandTotal))

	labelTexts := make([]core.Component, len(labels))
	valueTexts := make([]core.Component, len(values))
	for i := range labels {
		lp := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: float64(i) * 5}
		vp := props.Text{Size: 9, Align: align.Right, Right: 1, Top: float64(i) * 5}
		if i == len(labels)-1 {
			lp.Size, lp.Color = 10, colorPrimary
			vp.Size, vp.Color, vp.Style = 10, colorPrimary, fontstyle.Bold
		}
		labelTexts[i] = text.New(labels[i], lp)
		valueTexts[i] = text.New(values[i], vp)
	}
	return row.New(float64(len(labels))*5+4).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(labelTexts...),
		col.New(3).Add(valueTexts...),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func nonEmptyParts(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// formatMoney antepone la moneda y agrupa miles con coma. Ej: 1234567.50 → "Rs. 1,234,567.50"
func formatMoney(m money.Money) string {
	return currency + groupThousands(m.String())
}

// formatHalf muestra CGST/SGST sin redondear: Tax/2 puede tener tres decimales.
func formatHalf(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return groupThousands(d.StringFixed(2))
	}
	return groupThousands(d.String())
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
