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

var _ repository.CountSessionRepository = (*CountSessionRepo)(nil)

// CountSessionRepo implementación sobre PostgreSQL (usable con pool o tx).
type CountSessionRepo struct {
	q Querier
}

// NewCountSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountSessionRepository(q Querier) *CountSessionRepo {
	return &CountSessionRepo{q: q}
}

// Create persiste la cabecera y sus líneas (sesión inmutable: no hay Update).
func (r *CountSessionRepo) Create(session *entity.CountSession) error {
	ctx := context.Background()
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	query := `
		INSERT INTO count_sessions (id, operator_id, notes, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query,
		session.ID, session.OperatorID, session.Notes, session.CreatedAt); err != nil {
		return fmt.Errorf("create count session: %w", err)
	}

	lineQuery := `
		INSERT INTO count_session_lines (id, session_id, medication_id, expected_quantity, counted_quantity)
		VALUES ($1, $2, $3, $4, $5)`
	for i := range session.Lines {
		line := &session.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.SessionID = session.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			line.ID, line.SessionID, line.MedicationID, line.ExpectedQuantity, line.CountedQuantity); err != nil {
			return fmt.Errorf("create count session line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la sesión con sus líneas; (nil, nil) si no existe.
func (r *CountSessionRepo) GetByID(id string) (*entity.CountSession, error) {
	ctx := context.Background()
	query := `SELECT id, operator_id, notes, created_at FROM count_sessions WHERE id = $1`
	var session entity.CountSession
	err := r.q.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.OperatorID, &session.Notes, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count session: %w", err)
	}

	lineQuery := `
		SELECT id, session_id, medication_id, expected_quantity, counted_quantity
		FROM count_session_lines WHERE session_id = $1
		ORDER BY medication_id`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list count session lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.CountLine
		if err := rows.Scan(&line.ID, &line.SessionID, &line.MedicationID,
			&line.ExpectedQuantity, &line.CountedQuantity); err != nil {
			return nil, fmt.Errorf("scan count session line: %w", err)
		}
		session.Lines = append(session.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &session, nil
}

// List lista sesiones (cabeceras, sin líneas) de la más reciente a la más antigua.
func (r *CountSessionRepo) List(limit, offset int) ([]*entity.CountSession, error) {
	query := `
		SELECT id, operator_id, notes, created_at
		FROM count_sessions ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list count sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.CountSession
	for rows.Next() {
		var session entity.CountSession
		if err := rows.Scan(&session.ID, &session.OperatorID, &session.Notes, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan count session: %w", err)
		}
		list = append(list, &session)
	}
	return list, rows.Err()
}
