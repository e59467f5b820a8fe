// Package pdf implementa a geração do resumo de apuração do período em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Resumo de Apuração + período (MM/AAAA)             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Imposto | Situação | Créditos | Débitos | Saldo    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Créditos / Débitos / SALDO DO PERÍODO              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/tributa/fiscal-engine/internal/application/dto"
	"github.com/tributa/fiscal-engine/internal/application/fiscal"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ fiscal.SummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa fiscal.SummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSummaryPDF gera o PDF do resumo e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(_ context.Context, summary *dto.ApurationSummaryResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumo de Apuração", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, l := range summary.ByTaxType {
		m.AddRows(taxLineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título à esquerda e período à direita.
func headerRow(summary *dto.ApurationSummaryResponse) core.Row {
	periodo := fmt.Sprintf("%02d/%d", summary.Month, summary.Year)
	return row.New(14).Add(
		col.New(7).Add(
			text.New("RESUMO DE APURAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Período de referência", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1,
			}),
			text.New(periodo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, width int, al align.Type) core.Col {
		return col.New(width).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: al, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header("IMPOSTO", 3, align.Left),
		header("SITUAÇÃO", 2, align.Left),
		header("CRÉDITOS", 2, align.Right),
		header("DÉBITOS", 2, align.Right),
		header("SALDO", 3, align.Right),
	)
}

func taxLineRow(l dto.ApurationSummaryLine) core.Row {
	cell := func(value string, width int, al align.Type) core.Col {
		return col.New(width).Add(text.New(value, props.Text{Size: 8, Align: al, Top: 1}))
	}
	return row.New(6).Add(
		cell(l.TaxType, 3, align.Left),
		cell(l.Status, 2, align.Left),
		cell(formatValue(l.TotalCredit), 2, align.Right),
		cell(formatValue(l.TotalDebit), 2, align.Right),
		cell(formatValue(l.Balance), 3, align.Right),
	)
}

func totalsRow(summary *dto.ApurationSummaryResponse) core.Row {
	return row.New(16).Add(
		col.New(7),
		col.New(5).Add(
			text.New("Créditos: "+formatValue(summary.TotalCredit), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Débitos: "+formatValue(summary.TotalDebit), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
			text.New("SALDO DO PERÍODO: "+formatValue(summary.Balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 10, Color: colorPrimary,
			}),
		),
	)
}

func formatValue(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}
