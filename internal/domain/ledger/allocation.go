// Package ledger contiene servicios puros de dominio del libro de inventario:
// la planificación de consumo de lotes por vencimiento (FEFO) sin tocar
// persistencia, para que el motor de despacho sea verificable en aislamiento.
package ledger

import (
	"sort"

	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// BatchTake indica cuánto tomar de un lote concreto dentro de un plan de consumo.
type BatchTake struct {
	BatchID  string
	Quantity int64
}

// PlanConsumption calcula el plan de consumo para una cantidad solicitada:
// ordena los lotes por vencimiento ascendente (primero-en-vencer, FEFO) y los
// drena en ese orden hasta cubrir la cantidad. No muta los lotes recibidos.
//
// Devuelve ErrInvalidInput si requested <= 0 y ErrInsufficientStock si la suma
// disponible no alcanza; en ese caso no hay plan parcial: el caller no debe
// aplicar ninguna mutación.
func PlanConsumption(batches []*entity.Batch, requested int64) ([]BatchTake, error) {
	if requested <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if entity.TotalQuantity(batches) < requested {
		return nil, domain.ErrInsufficientStock
	}

	ordered := make([]*entity.Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExpirationDate.Before(ordered[j].ExpirationDate)
	})

	var plan []BatchTake
	remaining := requested
	for _, b := range ordered {
		if remaining == 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, BatchTake{BatchID: b.ID, Quantity: take})
		remaining -= take
	}
	return plan, nil
}
