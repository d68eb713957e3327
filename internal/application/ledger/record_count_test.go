package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

func TestRecordCount_CapturaElEsperadoDelLibro(t *testing.T) {
	// El esperado es la foto del total del libro al momento del conteo.
	f := newFixture()
	seedScenarioA(f) // med-1: 150 en el libro

	session, err := f.count.RecordCount(context.Background(), ledger.RecordCountInput{
		OperatorID: "op-1",
		Notes:      "conteo de cierre de mes",
		Lines: []ledger.CountLineInput{
			{MedicationID: "med-1", CountedQuantity: 148},
		},
	})
	require.NoError(t, err)

	require.NotEmpty(t, session.SessionID)
	assert.Equal(t, "op-1", session.OperatorID)
	require.Len(t, session.Lines, 1)
	assert.Equal(t, int64(150), session.Lines[0].ExpectedQuantity)
	assert.Equal(t, int64(148), session.Lines[0].CountedQuantity)
	assert.Equal(t, int64(-2), session.Lines[0].Variance, "varianza = contado - esperado")
}

func TestRecordCount_MedicamentoSinItemEsperaCero(t *testing.T) {
	f := newFixture()

	session, err := f.count.RecordCount(context.Background(), ledger.RecordCountInput{
		OperatorID: "op-1",
		Lines: []ledger.CountLineInput{
			{MedicationID: "med-fantasma", CountedQuantity: 7},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), session.Lines[0].ExpectedQuantity)
	assert.Equal(t, int64(7), session.Lines[0].Variance)
}

func TestRecordCount_NoMutaElLibro(t *testing.T) {
	f := newFixture()
	seedScenarioA(f)
	before := f.store.batchSnapshot()

	_, err := f.count.RecordCount(context.Background(), ledger.RecordCountInput{
		OperatorID: "op-1",
		Lines:      []ledger.CountLineInput{{MedicationID: "med-1", CountedQuantity: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, before, f.store.batchSnapshot(), "el conteo es de solo lectura sobre los lotes")
}

func TestRecordCount_ValidaEntrada(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.count.RecordCount(ctx, ledger.RecordCountInput{OperatorID: "op-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.count.RecordCount(ctx, ledger.RecordCountInput{
		Lines: []ledger.CountLineInput{{MedicationID: "med-1", CountedQuantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el operador es obligatorio")

	_, err = f.count.RecordCount(ctx, ledger.RecordCountInput{
		OperatorID: "op-1",
		Lines:      []ledger.CountLineInput{{MedicationID: "med-1", CountedQuantity: -3}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.count.RecordCount(ctx, ledger.RecordCountInput{
		OperatorID: "op-1",
		Lines: []ledger.CountLineInput{
			{MedicationID: "med-1", CountedQuantity: 1},
			{MedicationID: "med-1", CountedQuantity: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.store.sessions)
}

func TestGetSession_DerivaVarianzaAlLeer(t *testing.T) {
	f := newFixture()
	seedScenarioA(f)

	created, err := f.count.RecordCount(context.Background(), ledger.RecordCountInput{
		OperatorID: "op-1",
		Lines:      []ledger.CountLineInput{{MedicationID: "med-1", CountedQuantity: 160}},
	})
	require.NoError(t, err)

	read, err := f.count.GetSession(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), read.Lines[0].Variance)
}

func TestGetSession_NoExiste(t *testing.T) {
	f := newFixture()

	_, err := f.count.GetSession(context.Background(), "count-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionReportPDF_GeneraElReporte(t *testing.T) {
	f := newFixture()
	seedScenarioA(f)

	created, err := f.count.RecordCount(context.Background(), ledger.RecordCountInput{
		OperatorID: "op-1",
		Lines:      []ledger.CountLineInput{{MedicationID: "med-1", CountedQuantity: 150}},
	})
	require.NoError(t, err)

	pdf, err := f.count.SessionReportPDF(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, f.reportGen.calls)
}
