package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prescription es el registro de un despacho: cabecera con paciente,
// prescriptor y operador, y una línea por medicamento despachado.
// Se persiste en la misma transacción que descuenta los lotes.
type Prescription struct {
	ID           string
	PatientID    string
	PrescriberID string
	OperatorID   string // identidad externa (claims del token)
	TotalCharge  decimal.Decimal
	CreatedAt    time.Time
	Lines        []PrescriptionLine
}

// PrescriptionLine registra el consumo de un despacho: medicamento, cantidad
// tomada y el precio unitario cobrado (foto del precio vigente del item al
// momento del despacho, no el costo de adquisición de cada lote).
type PrescriptionLine struct {
	ID             string
	PrescriptionID string
	MedicationID   string
	Quantity       int64
	UnitPrice      decimal.Decimal
}
