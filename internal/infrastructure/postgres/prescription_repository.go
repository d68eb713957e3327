package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/farmacia-api/internal/domain/entity"
	"github.com/jhoicas/farmacia-api/internal/domain/repository"
)

var _ repository.PrescriptionRepository = (*PrescriptionRepo)(nil)

// PrescriptionRepo implementación sobre PostgreSQL (usable con pool o tx).
type PrescriptionRepo struct {
	q Querier
}

// NewPrescriptionRepository construye el adaptador.
func NewPrescriptionRepository(q Querier) *PrescriptionRepo {
	return &PrescriptionRepo{q: q}
}

// Create persiste la receta dispensada con sus líneas.
func (r *PrescriptionRepo) Create(prescription *entity.Prescription) error {
	ctx := context.Background()
	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	query := `
		INSERT INTO prescriptions (id, patient_id, prescriber_id, operator_id, total_charge, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query,
		prescription.ID, prescription.PatientID, prescription.PrescriberID,
		prescription.OperatorID, prescription.TotalCharge, prescription.CreatedAt); err != nil {
		return fmt.Errorf("create prescription: %w", err)
	}

	lineQuery := `
		INSERT INTO prescription_lines (id, prescription_id, medication_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range prescription.Lines {
		line := &prescription.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.PrescriptionID = prescription.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.PrescriptionID, line.MedicationID, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("create prescription line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la receta con sus líneas; (nil, nil) si no existe.
func (r *PrescriptionRepo) GetByID(id string) (*entity.Prescription, error) {
	ctx := context.Background()
	query := `
		SELECT id, patient_id, prescriber_id, operator_id, total_charge, created_at
		FROM prescriptions WHERE id = $1`
	var prescription entity.Prescription
	err := r.q.QueryRow(ctx, query, id).Scan(
		&prescription.ID, &prescription.PatientID, &prescription.PrescriberID,
		&prescription.OperatorID, &prescription.TotalCharge, &prescription.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	prescription.Lines = lines
	return &prescription, nil
}

// ListByPatient lista recetas del paciente, la más reciente primero.
func (r *PrescriptionRepo) ListByPatient(patientID string, limit, offset int) ([]*entity.Prescription, error) {
	ctx := context.Background()
	query := `
		SELECT id, patient_id, prescriber_id, operator_id, total_charge, created_at
		FROM prescriptions WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Prescription
	for rows.Next() {
		var prescription entity.Prescription
		if err := rows.Scan(&prescription.ID, &prescription.PatientID, &prescription.PrescriberID,
			&prescription.OperatorID, &prescription.TotalCharge, &prescription.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		list = append(list, &prescription)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, prescription := range list {
		lines, err := r.lines(ctx, prescription.ID)
		if err != nil {
			return nil, err
		}
		prescription.Lines = lines
	}
	return list, nil
}

func (r *PrescriptionRepo) lines(ctx context.Context, prescriptionID string) ([]entity.PrescriptionLine, error) {
	query := `
		SELECT id, prescription_id, medication_id, quantity, unit_price
		FROM prescription_lines WHERE prescription_id = $1
		ORDER BY medication_id`
	rows, err := r.q.Query(ctx, query, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("list prescription lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.PrescriptionLine
	for rows.Next() {
		var line entity.PrescriptionLine
		if err := rows.Scan(&line.ID, &line.PrescriptionID, &line.MedicationID,
			&line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan prescription line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
