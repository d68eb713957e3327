package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reporte de solo lectura sobre el libro.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListBelowMinimum devuelve los medicamentos cuyo total en lotes está por
// debajo de su umbral mínimo. Un medicamento sin ítem en el libro cuenta como
// total cero.
func (r *ReportRepo) ListBelowMinimum(ctx context.Context, limit int) ([]repository.LowStockRow, error) {
	query := `
		SELECT m.id, m.name, m.minimum_stock,
		       COALESCE(SUM(b.quantity), 0) AS total_quantity,
		       COALESCE(i.price, 0) AS unit_price
		FROM medications m
		LEFT JOIN inventory_items i ON i.medication_id = m.id
		LEFT JOIN batches b ON b.item_id = i.id
		WHERE m.minimum_stock > 0
		GROUP BY m.id, m.name, m.minimum_stock, i.price
		HAVING COALESCE(SUM(b.quantity), 0) < m.minimum_stock
		ORDER BY m.minimum_stock - COALESCE(SUM(b.quantity), 0) DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.MedicationID, &row.Name, &row.MinimumStock,
			&row.TotalQuantity, &row.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
