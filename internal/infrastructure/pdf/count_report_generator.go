// Package pdf genera el reporte de varianza de una sesión de conteo físico.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de conteo físico │ ID sesión + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OPERADOR + NOTAS                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medicamento | Esperado | Contado | Varianza         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: líneas con varianza / varianza absoluta total     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 66}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCountReportGenerator implementa ledger.CountReportGenerator usando
// Maroto v2.
type MarotoCountReportGenerator struct{}

// NewMarotoCountReportGenerator construye el generador.
func NewMarotoCountReportGenerator() *MarotoCountReportGenerator {
	return &MarotoCountReportGenerator{}
}

var _ ledger.CountReportGenerator = (*MarotoCountReportGenerator)(nil)

// GenerateCountReport genera el PDF del reporte de varianza y devuelve sus bytes.
func (g *MarotoCountReportGenerator) GenerateCountReport(
	_ context.Context,
	session *entity.CountSession,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Conteo Físico", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(operatorRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(session.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(session.Lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de conteo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) e ID de sesión + fecha (der).
func headerRow(session *entity.CountSession) core.Row {
	fecha := session.CreatedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE CONTEO FÍSICO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario de farmacia", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Sesión "+session.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// operatorRow: operador responsable y notas de la sesión.
func operatorRow(session *entity.CountSession) core.Row {
	notas := session.Notes
	if notas == "" {
		notas = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Operador: "+session.OperatorID, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Notas: "+notas, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medicamento", 6, align.Left),
		h("Esperado", 2, align.Right),
		h("Contado", 2, align.Right),
		h("Varianza", 2, align.Right),
	)
}

// tableLineRows: una fila por línea contada; la varianza distinta de cero va en
// rojo y con signo explícito.
func tableLineRows(lines []entity.CountLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		variance := l.Variance()
		varianceColor := colorGray
		varianceText := "0"
		if variance != 0 {
			varianceColor = colorAlert
			varianceText = fmt.Sprintf("%+d", variance)
		}
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				l.MedicationID,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				strconv.FormatInt(l.ExpectedQuantity, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				strconv.FormatInt(l.CountedQuantity, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(varianceText, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: varianceColor,
			})),
		))
	}
	return result
}

// summaryRow: cuántas líneas presentaron varianza y la varianza absoluta total.
func summaryRow(lines []entity.CountLine) core.Row {
	var withVariance int
	var absTotal int64
	for i := range lines {
		v := lines[i].Variance()
		if v != 0 {
			withVariance++
		}
		if v < 0 {
			v = -v
		}
		absTotal += v
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Líneas contadas: %d   |   Con varianza: %d   |   Varianza absoluta total: %d",
				len(lines), withVariance, absTotal,
			), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary}),
			text.New("Las varianzas quedan registradas en la sesión; conciliar el libro es una operación separada.",
				props.Text{Size: 7, Top: 9, Color: colorGray}),
		),
	)
}
