package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia del agregado de
// inventario (un item por medicamento). GetByMedication devuelve (nil, nil)
// si el medicamento nunca ha recibido stock.
type InventoryItemRepository interface {
	GetByMedication(medicationID string) (*entity.InventoryItem, error)
	// GetByMedicationForUpdate bloquea la fila del item (SELECT FOR UPDATE) para
	// serializar la secuencia leer-verificar-descontar del despacho.
	GetByMedicationForUpdate(medicationID string) (*entity.InventoryItem, error)
	Create(item *entity.InventoryItem) error
	UpdatePrice(itemID string, price decimal.Decimal) error
}
