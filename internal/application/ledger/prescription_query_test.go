package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

// Un despacho queda consultable por ID y en el histórico del paciente.
func TestPrescriptionQuery_GetYListByPatient(t *testing.T) {
	f := newFixture()
	seedScenarioA(f)

	resp, err := f.dispense.Dispense(context.Background(), ledger.DispenseInput{
		OperatorID: "op-1",
		PatientID:  "pat-1",
		Lines:      []ledger.DispenseLineInput{{MedicationID: "med-1", Quantity: 30}},
	})
	require.NoError(t, err)

	query := ledger.NewPrescriptionQueryUseCase(&memPrescriptionRepo{f.store})

	got, err := query.GetPrescription(context.Background(), resp.PrescriptionID)
	require.NoError(t, err)
	assert.Equal(t, "pat-1", got.PatientID)
	assert.Equal(t, "op-1", got.OperatorID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, int64(30), got.Lines[0].Quantity)
	assert.True(t, got.TotalCharge.Equal(resp.TotalCharge),
		"el histórico debe conservar el cargo total del despacho")

	list, err := query.ListByPatient(context.Background(), "pat-1", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, resp.PrescriptionID, list[0].ID)
}

// Una receta inexistente responde ErrNotFound.
func TestPrescriptionQuery_NoEncontrada(t *testing.T) {
	f := newFixture()
	query := ledger.NewPrescriptionQueryUseCase(&memPrescriptionRepo{f.store})

	_, err := query.GetPrescription(context.Background(), "rx-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
