// Package pdf genera el recibo en PDF de un pedido aceptado: pedido con id,
// líneas con precio, total y el resumen del proof token firmado por la
// fábrica.
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

	"github.com/jhoicas/Pizzeria-client/internal/domain/entity"
	"github.com/jhoicas/Pizzeria-client/pkg/prooftoken"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 234, Green: 88, Blue: 12}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator genera recibos de pedido usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateReceipt genera el PDF del recibo y devuelve sus bytes. diner puede
// ser nil cuando la sesión no tiene la identidad resuelta.
func (g *ReceiptGenerator) GenerateReceipt(receipt entity.OrderReceipt, diner *entity.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("JWT Pizza — recibo de pedido", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(receipt.Order, diner))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(receipt.Order) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(receipt.Order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range proofRows(receipt.ProofToken) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca (izq) y pedido + diner (der).
func headerRow(order entity.Order, diner *entity.User) core.Row {
	dinerName := "—"
	if diner != nil {
		dinerName = diner.Name
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("JWT Pizza", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Recibo de pedido", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Pedido #%d", order.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(order.Date, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
			text.New("Diner: "+dinerName, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New("Pizza", props.Text{Style: fontstyle.Bold, Size: 9})),
		col.New(4).Add(text.New("Precio (₿)", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right})),
	)
}

func itemRows(order entity.Order) []core.Row {
	rows := make([]core.Row, 0, len(order.Items))
	for _, it := range order.Items {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(it.Description, props.Text{Size: 9})),
			col.New(4).Add(text.New(it.Price.String(), props.Text{Size: 9, Align: align.Right})),
		))
	}
	return rows
}

func totalRow(order entity.Order) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10})),
		col.New(4).Add(text.New(order.Total().String()+" ₿", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary,
		})),
	)
}

// proofRows resumen del proof token: jti si se puede decodificar, y el token
// truncado para cotejarlo con la fábrica.
func proofRows(token string) []core.Row {
	jti := "—"
	if claims, err := prooftoken.Decode(token); err == nil {
		if v, ok := claims["jti"].(string); ok {
			jti = v
		}
	}
	shown := token
	if len(shown) > 60 {
		shown = shown[:60] + "…"
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Proof token (verificable en la fábrica)", props.Text{Size: 8, Color: colorGray}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("jti: "+jti, props.Text{Size: 8}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(shown, props.Text{Size: 7, Color: colorGray}),
		)),
	}
}
