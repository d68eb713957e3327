package entity

import "time"

// CountSession es el artefacto de auditoría de un conteo físico: para cada
// medicamento contado guarda la cantidad esperada (total del libro al momento
// del conteo) y la cantidad contada. Inmutable una vez creado; la conciliación
// posterior es una acción separada y explícita.
type CountSession struct {
	ID         string
	OperatorID string
	Notes      string
	CreatedAt  time.Time
	Lines      []CountLine
}

// CountLine es una entrada del conteo. La varianza (contado - esperado) no se
// almacena: se recalcula al leer.
type CountLine struct {
	ID               string
	SessionID        string
	MedicationID     string
	ExpectedQuantity int64 // foto del total del libro al registrar el conteo
	CountedQuantity  int64
}

// Variance devuelve contado - esperado (negativo = faltante).
func (l CountLine) Variance() int64 {
	return l.CountedQuantity - l.ExpectedQuantity
}
