// Package pdf genera el recibo de venta en PDF con Maroto v2.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Negocio        │  N° Recibo + Fecha   │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Vendedor / Forma de pago   │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal   │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Transporte 5% / TOTAL    │
//	│  FOOTER: QR con el código de la venta         │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/mayondo-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 58, Blue: 33}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	businessName string
}

// NewMarotoPDFGenerator construye el generador con el nombre del negocio del encabezado.
func NewMarotoPDFGenerator(businessName string) *MarotoPDFGenerator {
	if businessName == "" {
		businessName = "Mayondo Wood & Furniture"
	}
	return &MarotoPDFGenerator{businessName: businessName}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, receipt *dto.ReceiptDTO) ([]byte, error) {
	if receipt == nil {
		return nil, fmt.Errorf("pdf: recibo vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+receipt.ReceiptNumber, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(receipt))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(receipt))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(receipt))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y N° de recibo + fecha (der).
func (g *MarotoPDFGenerator) headerRow(r *dto.ReceiptDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Venta "+r.SaleCode, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(r.ReceiptNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+r.Date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente, vendedor y forma de pago.
func customerRow(r *dto.ReceiptDTO) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(r.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Vendedor: %s   |   Pago: %s",
				nonEmpty(r.SalesAgent, "-"),
				nonEmpty(r.PaymentType, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 4, align.Left),
		h("Precio Unit.", 3, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableDetailRow(r *dto.ReceiptDTO) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New(r.ProductName+" - "+r.ProductType,
			props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(3).Add(text.New(formatMoney(r.UnitPrice.StringFixed(2)),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(formatMoney(r.Subtotal.StringFixed(2)),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

// totalsRow: subtotal, transporte y total alineados a la derecha.
func totalsRow(r *dto.ReceiptDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right})
	}
	transport := "Transporte (5%):"
	if !r.TransportRequired {
		transport = "Transporte:"
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			text.New(transport, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 11, Color: colorPrimary}),
		),
		col.New(4).Add(
			value(formatMoney(r.Subtotal.StringFixed(2))),
			text.New(formatMoney(r.TransportFee.StringFixed(2)), props.Text{Size: 9, Align: align.Right, Top: 5}),
			text.New(formatMoney(r.Total.StringFixed(2)), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 11, Color: colorPrimary}),
		),
	)
}

// footerRow: QR con número de recibo y código de venta.
func footerRow(r *dto.ReceiptDTO) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(r.ReceiptNumber+"|"+r.SaleCode, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("Conserve este recibo como soporte de la venta.", props.Text{
				Size: 7, Top: 13, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta comas de miles en un importe con decimales.
// Ej: "630000.00" → "630,000.00", "-1500.50" → "-1,500.50"
func formatMoney(s string) string {
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
		return sign + intPart + frac
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
