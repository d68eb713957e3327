package ledger

import (
	"context"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa transacción. Cada operación de negocio del libro
// corre en exactamente una transacción: o se confirma completa o no se ve nada.
type TxRunner interface {
	// Run transacción básica sobre el libro (recepción manual, conciliación,
	// eliminación guardada de lotes).
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
	) error) error

	// RunDispense añade el repositorio de despachos: el descuento de lotes y la
	// prescripción con sus líneas se confirman juntos.
	RunDispense(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
		prescriptionRepo repository.PrescriptionRepository,
	) error) error

	// RunCount añade el repositorio de sesiones de conteo: la foto de cantidades
	// esperadas y la sesión se capturan en una misma transacción.
	RunCount(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
		sessionRepo repository.CountSessionRepository,
	) error) error

	// RunReceipt añade el repositorio de órdenes: recibir una orden aplica todas
	// sus líneas al libro y marca la orden RECEIVED atómicamente.
	RunReceipt(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
		orderRepo repository.SupplyOrderRepository,
	) error) error
}

// CountReportGenerator genera la representación PDF del reporte de varianza de
// una sesión de conteo.
type CountReportGenerator interface {
	GenerateCountReport(ctx context.Context, session *entity.CountSession) ([]byte, error)
}
