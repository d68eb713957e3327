package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
	"github.com/jhoicas/farmacia-api/internal/domain"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

// PrescriptionQueryUseCase consultas de solo lectura del histórico de despachos.
type PrescriptionQueryUseCase struct {
	prescriptionRepo repository.PrescriptionRepository
}

// NewPrescriptionQueryUseCase construye el caso de uso con un repositorio
// atado al pool.
func NewPrescriptionQueryUseCase(prescriptionRepo repository.PrescriptionRepository) *PrescriptionQueryUseCase {
	return &PrescriptionQueryUseCase{prescriptionRepo: prescriptionRepo}
}

// GetPrescription devuelve una receta despachada con sus líneas.
func (uc *PrescriptionQueryUseCase) GetPrescription(ctx context.Context, id string) (*dto.PrescriptionDTO, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	prescription, err := uc.prescriptionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, fmt.Errorf("receta %s: %w", id, domain.ErrNotFound)
	}
	return prescriptionToDTO(prescription), nil
}

// ListByPatient lista las recetas de un paciente, la más reciente primero.
func (uc *PrescriptionQueryUseCase) ListByPatient(ctx context.Context, patientID string, page dto.PageRequest) ([]dto.PrescriptionDTO, error) {
	if patientID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.prescriptionRepo.ListByPatient(patientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PrescriptionDTO, 0, len(list))
	for _, prescription := range list {
		result = append(result, *prescriptionToDTO(prescription))
	}
	return result, nil
}

func prescriptionToDTO(prescription *entity.Prescription) *dto.PrescriptionDTO {
	out := &dto.PrescriptionDTO{
		ID:           prescription.ID,
		PatientID:    prescription.PatientID,
		PrescriberID: prescription.PrescriberID,
		OperatorID:   prescription.OperatorID,
		TotalCharge:  prescription.TotalCharge,
		DispensedAt:  prescription.CreatedAt.Format(time.RFC3339),
		Lines:        make([]dto.PrescriptionLineDTO, 0, len(prescription.Lines)),
	}
	for _, line := range prescription.Lines {
		out.Lines = append(out.Lines, dto.PrescriptionLineDTO{
			MedicationID: line.MedicationID,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
		})
	}
	return out
}
