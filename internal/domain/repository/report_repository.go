package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// LowStockRow resultado crudo del reporte de stock bajo: medicamentos cuyo
// total en el libro está por debajo de su umbral mínimo.
type LowStockRow struct {
	MedicationID  string
	Name          string
	MinimumStock  int64
	TotalQuantity int64
	UnitPrice     decimal.Decimal
}

// ReportRepository define el puerto de consultas de reporte que leen el libro
// (agregaciones de solo lectura, fuera de las transacciones de mutación).
type ReportRepository interface {
	ListBelowMinimum(ctx context.Context, limit int) ([]LowStockRow, error)
}
