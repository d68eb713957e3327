package repository

import (
	"time"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// SupplyOrderRepository define el puerto de persistencia de órdenes de compra.
type SupplyOrderRepository interface {
	// GetByID devuelve la orden con sus líneas, o (nil, nil) si no existe.
	GetByID(id string) (*entity.SupplyOrder, error)
	// GetByIDForUpdate bloquea la cabecera para evitar recepciones concurrentes
	// de la misma orden.
	GetByIDForUpdate(id string) (*entity.SupplyOrder, error)
	Create(order *entity.SupplyOrder) error
	MarkReceived(orderID string, receivedAt time.Time) error
	List(status string, limit, offset int) ([]*entity.SupplyOrder, error)
}
