// Package sessions persists aggregation session snapshots in PostgreSQL.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// LockForUpdate reads the session row and holds its lock until the
// surrounding transaction ends. Missing sessions return common.ErrorNotFound.
func (r *PostgresRepository) LockForUpdate(ctx context.Context, sessionID string) (*models.AggregationSession, error) {
	return r.get(ctx, `
		SELECT session_id, modulus, sum, count, updated_at
		FROM agg_sessions
		WHERE session_id = $1
		FOR UPDATE
	`, sessionID)
}

// Get reads the committed state of a session.
func (r *PostgresRepository) Get(ctx context.Context, sessionID string) (*models.AggregationSession, error) {
	return r.get(ctx, `
		SELECT session_id, modulus, sum, count, updated_at
		FROM agg_sessions
		WHERE session_id = $1
	`, sessionID)
}

func (r *PostgresRepository) get(ctx context.Context, query string, sessionID string) (*models.AggregationSession, error) {
	s := &models.AggregationSession{}
	err := r.db.QueryRowContext(ctx, query, sessionID).
		Scan(&s.SessionID, &s.Modulus, &s.Sum, &s.Count, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// Insert creates the session row. It reports false when another writer
// created the row first.
func (r *PostgresRepository) Insert(ctx context.Context, s *models.AggregationSession) (bool, error) {
	query := `
		INSERT INTO agg_sessions (session_id, modulus, sum, count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, s.SessionID, s.Modulus, s.Sum, s.Count)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.AggregationSession) error {
	query := `
		UPDATE agg_sessions
		SET sum = $2, count = $3, updated_at = now()
		WHERE session_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, s.SessionID, s.Sum, s.Count); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}
