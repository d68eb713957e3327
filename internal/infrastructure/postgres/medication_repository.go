package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.MedicationRepository = (*MedicationRepo)(nil)

// MedicationRepo implementación de solo lectura sobre PostgreSQL. Las columnas
// normalized_name y normalized_generic guardan el nombre en minúsculas y sin
// acentos, pobladas por quien administra el catálogo.
type MedicationRepo struct {
	q Querier
}

// NewMedicationRepository construye el adaptador.
func NewMedicationRepository(q Querier) *MedicationRepo {
	return &MedicationRepo{q: q}
}

// GetByID devuelve (nil, nil) si el medicamento no existe.
func (r *MedicationRepo) GetByID(id string) (*entity.Medication, error) {
	query := `
		SELECT id, name, generic_name, form, minimum_stock, created_at, updated_at
		FROM medications WHERE id = $1`
	var medication entity.Medication
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&medication.ID, &medication.Name, &medication.GenericName, &medication.Form,
		&medication.MinimumStock, &medication.CreatedAt, &medication.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medication: %w", err)
	}
	return &medication, nil
}

// Search busca por nombre o nombre genérico; query llega ya normalizada.
func (r *MedicationRepo) Search(query string, limit, offset int) ([]*entity.Medication, error) {
	sql := `
		SELECT id, name, generic_name, form, minimum_stock, created_at, updated_at
		FROM medications
		WHERE normalized_name LIKE '%' || $1 || '%'
		   OR normalized_generic LIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), sql, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search medications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Medication
	for rows.Next() {
		var medication entity.Medication
		if err := rows.Scan(&medication.ID, &medication.Name, &medication.GenericName,
			&medication.Form, &medication.MinimumStock,
			&medication.CreatedAt, &medication.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan medication: %w", err)
		}
		list = append(list, &medication)
	}
	return list, rows.Err()
}
