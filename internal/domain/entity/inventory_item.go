package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem es el agregado de inventario de un medicamento: uno por
// medicamento, con el precio unitario vigente. Se crea de forma perezosa en la
// primera recepción de stock y posee sus lotes (Batch) vía ItemID.
// La cantidad total no se almacena: se deriva de la suma de sus lotes.
type InventoryItem struct {
	ID           string
	MedicationID string          // único: un item por medicamento
	Price        decimal.Decimal // precio unitario vigente (> 0); gana el último recibido
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
