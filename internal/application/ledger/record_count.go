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

// RecordCountUseCase captura una sesión de conteo físico: para cada línea toma
// la cantidad esperada como foto del total del libro en ese instante y guarda
// la sesión como artefacto de auditoría inmutable. No muta lotes; conciliar es
// una acción posterior y separada.
type RecordCountUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.CountSessionRepository // lecturas fuera de transacción
	reportGen   CountReportGenerator
}

// NewRecordCountUseCase construye el caso de uso.
func NewRecordCountUseCase(
	txRunner TxRunner,
	sessionRepo repository.CountSessionRepository,
	reportGen CountReportGenerator,
) *RecordCountUseCase {
	return &RecordCountUseCase{txRunner: txRunner, sessionRepo: sessionRepo, reportGen: reportGen}
}

// CountLineInput una línea contada.
type CountLineInput struct {
	MedicationID    string
	CountedQuantity int64
}

// RecordCountInput entrada del registro de conteo.
type RecordCountInput struct {
	OperatorID string
	Notes      string
	Lines      []CountLineInput
}

// RecordCount registra la sesión. Un medicamento sin item en el libro cuenta
// con esperado 0 (la conciliación decidirá si lo omite).
func (uc *RecordCountUseCase) RecordCount(ctx context.Context, in RecordCountInput) (*dto.CountSessionResponse, error) {
	if in.OperatorID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Lines))
	for _, line := range in.Lines {
		if line.MedicationID == "" {
			return nil, domain.ErrInvalidInput
		}
		if line.CountedQuantity < 0 {
			return nil, fmt.Errorf("medicamento %s: la cantidad contada no puede ser negativa: %w", line.MedicationID, domain.ErrInvalidInput)
		}
		if seen[line.MedicationID] {
			return nil, fmt.Errorf("medicamento %s: línea duplicada: %w", line.MedicationID, domain.ErrInvalidInput)
		}
		seen[line.MedicationID] = true
	}

	session := &entity.CountSession{
		OperatorID: in.OperatorID,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}
	err := uc.txRunner.RunCount(ctx, func(
		itemRepo repository.InventoryItemRepository,
		batchRepo repository.BatchRepository,
		sessionRepo repository.CountSessionRepository,
	) error {
		for _, line := range in.Lines {
			var expected int64
			item, err := itemRepo.GetByMedication(line.MedicationID)
			if err != nil {
				return err
			}
			if item != nil {
				batches, err := batchRepo.ListByItem(item.ID, false)
				if err != nil {
					return err
				}
				expected = entity.TotalQuantity(batches)
			}
			session.Lines = append(session.Lines, entity.CountLine{
				MedicationID:     line.MedicationID,
				ExpectedQuantity: expected,
				CountedQuantity:  line.CountedQuantity,
			})
		}
		return sessionRepo.Create(session)
	})
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

// GetSession devuelve una sesión con varianzas derivadas.
func (uc *RecordCountUseCase) GetSession(ctx context.Context, sessionID string) (*dto.CountSessionResponse, error) {
	session, err := uc.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

// SessionReportPDF genera el reporte de varianza en PDF de una sesión.
func (uc *RecordCountUseCase) SessionReportPDF(ctx context.Context, sessionID string) ([]byte, error) {
	session, err := uc.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateCountReport(ctx, session)
}

func (uc *RecordCountUseCase) loadSession(sessionID string) (*entity.CountSession, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	session, err := uc.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("sesión de conteo %s: %w", sessionID, domain.ErrNotFound)
	}
	return session, nil
}

func sessionToDTO(session *entity.CountSession) *dto.CountSessionResponse {
	resp := &dto.CountSessionResponse{
		SessionID:  session.ID,
		OperatorID: session.OperatorID,
		Notes:      session.Notes,
		CreatedAt:  session.CreatedAt.Format(time.RFC3339),
	}
	for _, line := range session.Lines {
		resp.Lines = append(resp.Lines, dto.CountLineResponse{
			MedicationID:     line.MedicationID,
			ExpectedQuantity: line.ExpectedQuantity,
			CountedQuantity:  line.CountedQuantity,
			Variance:         line.Variance(),
		})
	}
	return resp
}
