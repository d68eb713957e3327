package repository

import (
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia de lotes. Los listados
// devuelven siempre orden ascendente por vencimiento; los métodos ForUpdate
// bloquean las filas (SELECT FOR UPDATE) dentro de la transacción activa.
type BatchRepository interface {
	GetByID(batchID string) (*entity.Batch, error)
	// GetByItemAndExpiration devuelve (nil, nil) si no existe lote con ese vencimiento.
	GetByItemAndExpiration(itemID string, expiration time.Time) (*entity.Batch, error)
	// ListByItem lista los lotes del item; con onlyAvailable solo quantity > 0.
	ListByItem(itemID string, onlyAvailable bool) ([]*entity.Batch, error)
	ListByItemForUpdate(itemID string, onlyAvailable bool) ([]*entity.Batch, error)
	Create(batch *entity.Batch) error
	UpdateQuantity(batchID string, quantity int64) error
	// DeleteByItem elimina todos los lotes del item (conciliación).
	DeleteByItem(itemID string) error
	Delete(batchID string) error
}
