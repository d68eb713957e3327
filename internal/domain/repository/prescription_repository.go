package repository

import "github.com/jhoicas/farmacia-api/internal/domain/entity"

// PrescriptionRepository define el puerto de persistencia de despachos.
// Create se invoca dentro de la misma transacción que descuenta los lotes.
type PrescriptionRepository interface {
	// Create persiste la cabecera y sus líneas de consumo.
	Create(prescription *entity.Prescription) error
	// GetByID devuelve el despacho con sus líneas, o (nil, nil) si no existe.
	GetByID(id string) (*entity.Prescription, error)
	ListByPatient(patientID string, limit, offset int) ([]*entity.Prescription, error)
}
