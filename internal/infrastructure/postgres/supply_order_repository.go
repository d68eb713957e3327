package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.SupplyOrderRepository = (*SupplyOrderRepo)(nil)

// SupplyOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplyOrderRepo struct {
	q Querier
}

// NewSupplyOrderRepository construye el adaptador.
func NewSupplyOrderRepository(q Querier) *SupplyOrderRepo {
	return &SupplyOrderRepo{q: q}
}

// GetByID devuelve la orden con sus líneas, o (nil, nil) si no existe.
func (r *SupplyOrderRepo) GetByID(id string) (*entity.SupplyOrder, error) {
	return r.get(id, false)
}

// GetByIDForUpdate bloquea la cabecera (SELECT ... FOR UPDATE) antes de leerla.
func (r *SupplyOrderRepo) GetByIDForUpdate(id string) (*entity.SupplyOrder, error) {
	return r.get(id, true)
}

func (r *SupplyOrderRepo) get(id string, forUpdate bool) (*entity.SupplyOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, status, created_at, received_at
		FROM supply_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var order entity.SupplyOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.SupplierID, &order.Status, &order.CreatedAt, &order.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply order: %w", err)
	}

	lineQuery := `
		SELECT id, order_id, medication_id, quantity, unit_price, expiration_date
		FROM supply_order_lines WHERE order_id = $1
		ORDER BY medication_id`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list supply order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.SupplyOrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MedicationID,
			&line.Quantity, &line.UnitPrice, &line.ExpirationDate); err != nil {
			return nil, fmt.Errorf("scan supply order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

// Create persiste la orden pendiente con sus líneas.
func (r *SupplyOrderRepo) Create(order *entity.SupplyOrder) error {
	ctx := context.Background()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO supply_orders (id, supplier_id, status, created_at, received_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query,
		order.ID, order.SupplierID, order.Status, order.CreatedAt, order.ReceivedAt); err != nil {
		return fmt.Errorf("create supply order: %w", err)
	}

	lineQuery := `
		INSERT INTO supply_order_lines (id, order_id, medication_id, quantity, unit_price, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range order.Lines {
		line := &order.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = order.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.OrderID, line.MedicationID, line.Quantity,
			line.UnitPrice, line.ExpirationDate); err != nil {
			return fmt.Errorf("create supply order line: %w", err)
		}
	}
	return nil
}

// MarkReceived cambia el estado a RECEIVED y registra la fecha de recepción.
func (r *SupplyOrderRepo) MarkReceived(orderID string, receivedAt time.Time) error {
	query := `UPDATE supply_orders SET status = $1, received_at = $2 WHERE id = $3`
	if _, err := r.q.Exec(context.Background(), query,
		entity.OrderStatusReceived, receivedAt, orderID); err != nil {
		return fmt.Errorf("mark supply order received: %w", err)
	}
	return nil
}

// List lista órdenes (cabeceras, sin líneas); status vacío lista todas.
func (r *SupplyOrderRepo) List(status string, limit, offset int) ([]*entity.SupplyOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, status, created_at, received_at
		FROM supply_orders`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list supply orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyOrder
	for rows.Next() {
		var order entity.SupplyOrder
		if err := rows.Scan(&order.ID, &order.SupplierID, &order.Status,
			&order.CreatedAt, &order.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan supply order: %w", err)
		}
		list = append(list, &order)
	}
	return list, rows.Err()
}
