package entity

import "time"

// Batch representa un lote: cantidad de un medicamento que comparte una misma
// fecha de vencimiento, bajo un InventoryItem. Invariantes: Quantity >= 0 y a
// lo sumo un lote por (ItemID, ExpirationDate) — una segunda recepción con el
// mismo vencimiento suma sobre el lote existente, nunca crea un duplicado.
// El despacho nunca elimina lotes implícitamente, ni al llegar a cero; la
// eliminación es una operación explícita que exige Quantity == 0.
type Batch struct {
	ID             string
	ItemID         string
	Quantity       int64
	ExpirationDate time.Time // precisión de día
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsExpired indica si el lote ya venció respecto a la fecha dada.
func (b *Batch) IsExpired(now time.Time) bool {
	return b.ExpirationDate.Before(now)
}

// TotalQuantity suma las cantidades de un conjunto de lotes (cantidad total del item).
func TotalQuantity(batches []*Batch) int64 {
	var total int64
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}
