package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain"
)

func TestDeleteBatch_SoloLotesVacios(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedScenarioA(f)

	// Drenar por completo el lote de enero (100 unidades).
	_, err := f.dispense.Dispense(ctx,
		dispenseLines(ledger.DispenseLineInput{MedicationID: "med-1", Quantity: 100}))
	require.NoError(t, err)

	var emptyID, fullID string
	for id, b := range f.store.batches {
		if b.Quantity == 0 {
			emptyID = id
		} else {
			fullID = id
		}
	}
	require.NotEmpty(t, emptyID)
	require.NotEmpty(t, fullID)

	// Un lote con existencias no se puede eliminar.
	err = f.batches.DeleteBatch(ctx, fullID)
	assert.ErrorIs(t, err, domain.ErrBatchNotEmpty)
	_, stillThere := f.store.batches[fullID]
	assert.True(t, stillThere)

	// El lote vacío sí.
	require.NoError(t, f.batches.DeleteBatch(ctx, emptyID))
	_, gone := f.store.batches[emptyID]
	assert.False(t, gone)
}

func TestDeleteBatch_Inexistente(t *testing.T) {
	f := newFixture()

	err := f.batches.DeleteBatch(context.Background(), "batch-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
