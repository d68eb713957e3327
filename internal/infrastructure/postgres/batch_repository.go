package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación sobre PostgreSQL (usable con pool o tx). La tabla
// batches lleva UNIQUE (item_id, expiration_date) y CHECK (quantity >= 0):
// los invariantes del lote se sostienen también en la base.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, item_id, quantity, expiration_date, created_at, updated_at`

// GetByID obtiene un lote por ID; (nil, nil) si no existe.
func (r *BatchRepo) GetByID(batchID string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, batchID).Scan(
		&b.ID, &b.ItemID, &b.Quantity, &b.ExpirationDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// GetByItemAndExpiration obtiene el lote del vencimiento dado; (nil, nil) si
// no existe (la recepción decidirá crear en vez de fusionar).
func (r *BatchRepo) GetByItemAndExpiration(itemID string, expiration time.Time) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE item_id = $1 AND expiration_date = $2`
	var b entity.Batch
	err := r.q.QueryRow(context.Background(), query, itemID, expiration).Scan(
		&b.ID, &b.ItemID, &b.Quantity, &b.ExpirationDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch by expiration: %w", err)
	}
	return &b, nil
}

// ListByItem lista los lotes del item en orden ascendente de vencimiento
// (el orden de consumo FEFO); con onlyAvailable solo quantity > 0.
func (r *BatchRepo) ListByItem(itemID string, onlyAvailable bool) ([]*entity.Batch, error) {
	return r.list(itemID, onlyAvailable, false)
}

// ListByItemForUpdate igual que ListByItem pero bloqueando las filas
// (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *BatchRepo) ListByItemForUpdate(itemID string, onlyAvailable bool) ([]*entity.Batch, error) {
	return r.list(itemID, onlyAvailable, true)
}

func (r *BatchRepo) list(itemID string, onlyAvailable, forUpdate bool) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE item_id = $1`
	if onlyAvailable {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY expiration_date ASC`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ItemID, &b.Quantity, &b.ExpirationDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Create persiste un lote nuevo. Una violación del índice único
// (item, vencimiento) se reporta como conflicto de dominio.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (id, item_id, quantity, expiration_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ItemID, batch.Quantity, batch.ExpirationDate, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lote duplicado para el vencimiento %s: %w",
				batch.ExpirationDate.Format("2006-01-02"), domain.ErrConflict)
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad del lote (recepciones suman, despachos restan).
func (r *BatchRepo) UpdateQuantity(batchID string, quantity int64) error {
	query := `UPDATE batches SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, batchID, quantity)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}

// DeleteByItem elimina todos los lotes del item (paso de la conciliación).
func (r *BatchRepo) DeleteByItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete batches by item: %w", err)
	}
	return nil
}

// Delete elimina un lote puntual (la guarda quantity == 0 vive en el caso de uso).
func (r *BatchRepo) Delete(batchID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM batches WHERE id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
