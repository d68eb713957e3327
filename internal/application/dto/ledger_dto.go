package dto

import "github.com/shopspring/decimal"

// Las fechas de vencimiento viajan como "YYYY-MM-DD" (precisión de día).
const DateLayout = "2006-01-02"

// ReceiveStockRequest body para POST /api/inventory/receipts.
type ReceiveStockRequest struct {
	MedicationID   string          `json:"medication_id"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int64           `json:"quantity"`
	ExpirationDate string          `json:"expiration_date"`
}

// BatchDTO un lote dentro de la foto del item.
type BatchDTO struct {
	ID             string `json:"id"`
	Quantity       int64  `json:"quantity"`
	ExpirationDate string `json:"expiration_date"`
}

// ItemSnapshotDTO foto del item tras una operación o consulta: precio vigente,
// total derivado y lotes ordenados por vencimiento.
type ItemSnapshotDTO struct {
	MedicationID  string          `json:"medication_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalQuantity int64           `json:"total_quantity"`
	Batches       []BatchDTO      `json:"batches"`
}

// DispenseLineRequest una línea de despacho solicitada.
type DispenseLineRequest struct {
	MedicationID string `json:"medication_id"`
	Quantity     int64  `json:"quantity"`
}

// DispenseRequest body para POST /api/prescriptions.
type DispenseRequest struct {
	PatientID    string                `json:"patient_id"`
	PrescriberID string                `json:"prescriber_id"`
	Lines        []DispenseLineRequest `json:"lines"`
}

// DispenseLineResponse consumo resultante de una línea.
type DispenseLineResponse struct {
	MedicationID string          `json:"medication_id"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// DispenseResponse resultado del despacho completo.
type DispenseResponse struct {
	PrescriptionID string                 `json:"prescription_id"`
	TotalCharge    decimal.Decimal        `json:"total_charge"`
	Lines          []DispenseLineResponse `json:"lines"`
}

// CountLineRequest una línea del conteo físico.
type CountLineRequest struct {
	MedicationID    string `json:"medication_id"`
	CountedQuantity int64  `json:"counted_quantity"`
}

// RecordCountRequest body para POST /api/counts.
type RecordCountRequest struct {
	Notes string             `json:"notes"`
	Lines []CountLineRequest `json:"lines"`
}

// CountLineResponse línea del conteo con la varianza derivada.
type CountLineResponse struct {
	MedicationID     string `json:"medication_id"`
	ExpectedQuantity int64  `json:"expected_quantity"`
	CountedQuantity  int64  `json:"counted_quantity"`
	Variance         int64  `json:"variance"`
}

// CountSessionResponse sesión de conteo completa.
type CountSessionResponse struct {
	SessionID  string              `json:"session_id"`
	OperatorID string              `json:"operator_id"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  string              `json:"created_at"`
	Lines      []CountLineResponse `json:"lines"`
}

// LowStockDTO una sugerencia del reporte de stock bajo.
type LowStockDTO struct {
	MedicationID       string          `json:"medication_id"`
	Name               string          `json:"name"`
	MinimumStock       int64           `json:"minimum_stock"`
	CurrentStock       int64           `json:"current_stock"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`  // 2*mínimo - actual
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // sugerido * precio vigente
}

// OrderLineRequest línea de una orden de compra nueva.
type OrderLineRequest struct {
	MedicationID   string          `json:"medication_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ExpirationDate string          `json:"expiration_date"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierID string             `json:"supplier_id"`
	Lines      []OrderLineRequest `json:"lines"`
}

// SupplyOrderLineDTO línea de una orden de compra.
type SupplyOrderLineDTO struct {
	MedicationID   string          `json:"medication_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ExpirationDate string          `json:"expiration_date"`
}

// SupplyOrderDTO orden de compra con sus líneas.
type SupplyOrderDTO struct {
	ID         string               `json:"id"`
	SupplierID string               `json:"supplier_id"`
	Status     string               `json:"status"`
	CreatedAt  string               `json:"created_at"`
	ReceivedAt string               `json:"received_at,omitempty"`
	Lines      []SupplyOrderLineDTO `json:"lines,omitempty"`
}

// PrescriptionLineDTO línea de una receta ya despachada.
type PrescriptionLineDTO struct {
	MedicationID string          `json:"medication_id"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// PrescriptionDTO receta despachada (histórico).
type PrescriptionDTO struct {
	ID           string                `json:"id"`
	PatientID    string                `json:"patient_id"`
	PrescriberID string                `json:"prescriber_id,omitempty"`
	OperatorID   string                `json:"operator_id"`
	TotalCharge  decimal.Decimal       `json:"total_charge"`
	DispensedAt  string                `json:"dispensed_at"`
	Lines        []PrescriptionLineDTO `json:"lines"`
}

// MedicationDTO resultado de búsqueda en el catálogo.
type MedicationDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	GenericName  string `json:"generic_name,omitempty"`
	Form         string `json:"form,omitempty"`
	MinimumStock int64  `json:"minimum_stock"`
}
