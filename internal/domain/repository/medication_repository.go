package repository

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// MedicationRepository define el puerto de lectura del catálogo de
// medicamentos. El CRUD del catálogo vive fuera de este núcleo; el libro solo
// necesita resolver IDs y buscar por nombre.
type MedicationRepository interface {
	// GetByID devuelve (nil, nil) si el medicamento no existe.
	GetByID(id string) (*entity.Medication, error)
	// Search busca por nombre o nombre genérico; query llega ya normalizada
	// (minúsculas, sin acentos) por la capa de aplicación.
	Search(query string, limit, offset int) ([]*entity.Medication, error)
}
