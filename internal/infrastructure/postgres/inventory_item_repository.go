package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// GetByMedication obtiene el item de un medicamento; (nil, nil) si nunca
// recibió stock.
func (r *InventoryItemRepo) GetByMedication(medicationID string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, medication_id, price, created_at, updated_at
		FROM inventory_items WHERE medication_id = $1`
	return r.scanOne(query, medicationID)
}

// GetByMedicationForUpdate obtiene el item y bloquea su fila (SELECT FOR
// UPDATE) para serializar la secuencia leer-verificar-descontar.
func (r *InventoryItemRepo) GetByMedicationForUpdate(medicationID string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, medication_id, price, created_at, updated_at
		FROM inventory_items WHERE medication_id = $1
		FOR UPDATE`
	return r.scanOne(query, medicationID)
}

func (r *InventoryItemRepo) scanOne(query, medicationID string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, medicationID).Scan(
		&item.ID, &item.MedicationID, &item.Price, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &item, nil
}

// Create persiste el item (creación perezosa en la primera recepción). Dos
// primeras recepciones concurrentes del mismo medicamento pueden pasar ambas
// el lookup y chocar en UNIQUE (medication_id); la violación se reporta como
// conflicto de dominio para que el cliente reintente la recepción.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_items (id, medication_id, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.MedicationID, item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("item duplicado para el medicamento %s: %w",
				item.MedicationID, domain.ErrConflict)
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// UpdatePrice actualiza el precio vigente del item (gana el último recibido).
func (r *InventoryItemRepo) UpdatePrice(itemID string, price decimal.Decimal) error {
	query := `UPDATE inventory_items SET price = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, price)
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	return nil
}
