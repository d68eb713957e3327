package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/ledger"
)

func lote(id string, qty int64, exp string) *entity.Batch {
	d, _ := time.Parse("2006-01-02", exp)
	return &entity.Batch{ID: id, ItemID: "item-1", Quantity: qty, ExpirationDate: d}
}

func TestPlanConsumption_OrdenPorVencimiento(t *testing.T) {
	// Los lotes llegan desordenados; el plan debe drenar primero el que vence antes,
	// sin importar el orden de recepción.
	batches := []*entity.Batch{
		lote("b-jun", 50, "2025-06-01"),
		lote("b-ene", 100, "2025-01-01"),
	}

	plan, err := ledger.PlanConsumption(batches, 120)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "b-ene", plan[0].BatchID)
	assert.Equal(t, int64(100), plan[0].Quantity)
	assert.Equal(t, "b-jun", plan[1].BatchID)
	assert.Equal(t, int64(20), plan[1].Quantity)
}

func TestPlanConsumption_UnSoloLoteSiAlcanza(t *testing.T) {
	batches := []*entity.Batch{
		lote("b-ene", 100, "2025-01-01"),
		lote("b-jun", 50, "2025-06-01"),
	}

	plan, err := ledger.PlanConsumption(batches, 80)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "b-ene", plan[0].BatchID)
	assert.Equal(t, int64(80), plan[0].Quantity)
}

func TestPlanConsumption_ConservaCantidadSolicitada(t *testing.T) {
	batches := []*entity.Batch{
		lote("a", 7, "2025-03-01"),
		lote("b", 13, "2025-01-15"),
		lote("c", 25, "2025-08-01"),
	}

	plan, err := ledger.PlanConsumption(batches, 30)
	require.NoError(t, err)

	var total int64
	for _, take := range plan {
		total += take.Quantity
	}
	assert.Equal(t, int64(30), total, "la suma de tomas debe igualar lo solicitado")
}

func TestPlanConsumption_StockInsuficiente(t *testing.T) {
	batches := []*entity.Batch{
		lote("b-ene", 100, "2025-01-01"),
		lote("b-jun", 50, "2025-06-01"),
	}

	plan, err := ledger.PlanConsumption(batches, 200)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, plan, "no debe haber plan parcial")
}

func TestPlanConsumption_CantidadInvalida(t *testing.T) {
	batches := []*entity.Batch{lote("b", 10, "2025-01-01")}

	_, err := ledger.PlanConsumption(batches, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ledger.PlanConsumption(batches, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanConsumption_IgnoraLotesVacios(t *testing.T) {
	batches := []*entity.Batch{
		lote("vacio", 0, "2024-12-01"),
		lote("lleno", 40, "2025-02-01"),
	}

	plan, err := ledger.PlanConsumption(batches, 40)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "lleno", plan[0].BatchID)
}

func TestPlanConsumption_NoMutaLosLotes(t *testing.T) {
	batches := []*entity.Batch{
		lote("b-ene", 100, "2025-01-01"),
		lote("b-jun", 50, "2025-06-01"),
	}

	_, err := ledger.PlanConsumption(batches, 120)
	require.NoError(t, err)

	assert.Equal(t, int64(100), batches[0].Quantity)
	assert.Equal(t, int64(50), batches[1].Quantity)
	assert.Equal(t, "b-ene", batches[0].ID, "el slice original no debe reordenarse")
}
