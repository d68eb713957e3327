package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra a proveedor.
const (
	OrderStatusPending  = "PENDING"
	OrderStatusReceived = "RECEIVED"
)

// SupplyOrder es una orden de compra a un proveedor. Recibirla ejecuta una
// recepción de stock por cada línea y marca la orden RECEIVED, todo en una
// sola transacción; una orden ya recibida no puede recibirse de nuevo.
type SupplyOrder struct {
	ID         string
	SupplierID string
	Status     string
	CreatedAt  time.Time
	ReceivedAt *time.Time
	Lines      []SupplyOrderLine
}

// SupplyOrderLine línea de la orden: qué medicamento llega, cuánto, a qué
// precio unitario y con qué vencimiento.
type SupplyOrderLine struct {
	ID             string
	OrderID        string
	MedicationID   string
	Quantity       int64
	UnitPrice      decimal.Decimal
	ExpirationDate time.Time
}
