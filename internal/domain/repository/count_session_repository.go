package repository

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// CountSessionRepository define el puerto de persistencia para sesiones de
// conteo físico. Las sesiones son inmutables: solo Create y lecturas.
type CountSessionRepository interface {
	// Create persiste la cabecera y sus líneas.
	Create(session *entity.CountSession) error
	// GetByID devuelve la sesión con sus líneas, o (nil, nil) si no existe.
	GetByID(id string) (*entity.CountSession, error)
	List(limit, offset int) ([]*entity.CountSession, error)
}
