package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

type memMedicationRepo struct {
	meds      []*entity.Medication
	lastQuery string
}

func (r *memMedicationRepo) GetByID(id string) (*entity.Medication, error) {
	for _, m := range r.meds {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMedicationRepo) Search(query string, limit, offset int) ([]*entity.Medication, error) {
	r.lastQuery = query
	return r.meds, nil
}

type memReportRepo struct{ rows []repository.LowStockRow }

func (r *memReportRepo) ListBelowMinimum(_ context.Context, limit int) ([]repository.LowStockRow, error) {
	return r.rows, nil
}

func newQueryUC(f *fixture, medRepo *memMedicationRepo, reportRepo *memReportRepo) *ledger.LedgerQueryUseCase {
	return ledger.NewLedgerQueryUseCase(
		&memItemRepo{f.store}, &memBatchRepo{f.store}, medRepo, reportRepo)
}

func TestGetItem_DevuelveLaFotoDelLibro(t *testing.T) {
	f := newFixture()
	seedScenarioA(f)
	uc := newQueryUC(f, &memMedicationRepo{}, &memReportRepo{})

	snap, err := uc.GetItem(context.Background(), "med-1")
	require.NoError(t, err)
	assert.Equal(t, int64(150), snap.TotalQuantity)
	require.Len(t, snap.Batches, 2)
	assert.Equal(t, "2025-01-01", snap.Batches[0].ExpirationDate, "lotes ordenados por vencimiento")
}

func TestGetItem_SinStockRegistrado(t *testing.T) {
	f := newFixture()
	uc := newQueryUC(f, &memMedicationRepo{}, &memReportRepo{})

	_, err := uc.GetItem(context.Background(), "med-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock_SugiereHastaDosVecesElMinimo(t *testing.T) {
	f := newFixture()
	uc := newQueryUC(f, &memMedicationRepo{}, &memReportRepo{rows: []repository.LowStockRow{
		{MedicationID: "med-1", Name: "Acetaminofén 500mg", MinimumStock: 40, TotalQuantity: 10, UnitPrice: decimal.RequireFromString("2.00")},
	}})

	list, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(70), list[0].SuggestedOrderQty, "2×40 − 10")
	assert.True(t, decimal.RequireFromString("140.00").Equal(list[0].EstimatedOrderCost))
}

func TestSearchMedications_NormalizaLaConsulta(t *testing.T) {
	f := newFixture()
	medRepo := &memMedicationRepo{meds: []*entity.Medication{
		{ID: "med-1", Name: "Acetaminofén 500mg", MinimumStock: 40},
	}}
	uc := newQueryUC(f, medRepo, &memReportRepo{})

	result, err := uc.SearchMedications(context.Background(), "  ACETAMINOFÉN ", 20, 0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "acetaminofen", medRepo.lastQuery, "minúsculas y sin acentos")

	_, err = uc.SearchMedications(context.Background(), "   ", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
