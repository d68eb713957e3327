package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL: Begin,
// repos atados a la tx, Commit si fn retorna nil, Rollback si no. Los
// SELECT FOR UPDATE de los repositorios mantienen sus bloqueos hasta el
// Commit/Rollback, que es lo que serializa despachos concurrentes.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run transacción con repos del libro (recepción manual, conciliación,
// eliminación de lotes).
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewBatchRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDispense transacción de despacho: descuento de lotes y prescripción juntos.
func (r *TxRunner) RunDispense(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
	prescriptionRepo repository.PrescriptionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewBatchRepository(tx), NewPrescriptionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCount transacción de conteo: foto de esperados y sesión juntos.
func (r *TxRunner) RunCount(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
	sessionRepo repository.CountSessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewBatchRepository(tx), NewCountSessionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReceipt transacción de recepción de orden: líneas al libro y estado
// RECEIVED juntos.
func (r *TxRunner) RunReceipt(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	batchRepo repository.BatchRepository,
	orderRepo repository.SupplyOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewBatchRepository(tx), NewSupplyOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
