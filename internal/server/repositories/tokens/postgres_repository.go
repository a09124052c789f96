// Package tokens stores the trapdoor search index in PostgreSQL. A
// PostgresRepository bound to a DBTX is a trapdoor.Index.
package tokens

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

type PostgresRepository struct {
	db dbx.DBTX
}

var _ trapdoor.Index = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add records that recordID carries every token. The record row must
// already exist. Repeated pairs are ignored.
func (r *PostgresRepository) Add(ctx context.Context, recordID string, tokens []trapdoor.Token) error {
	query := `
		INSERT INTO index_entries (token, record_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, t := range tokens {
		if _, err := r.db.ExecContext(ctx, query, t[:], recordID); err != nil {
			return fmt.Errorf("error performing sql request: %w", err)
		}
	}
	return nil
}

// Query returns the ids of records holding token, sorted. No match yields
// an empty slice.
func (r *PostgresRepository) Query(ctx context.Context, token trapdoor.Token) ([]string, error) {
	query := `
		SELECT record_id
		FROM index_entries
		WHERE token = $1
		ORDER BY record_id
	`
	rows, err := r.db.QueryContext(ctx, query, token[:])
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, recordID string) error {
	query := `
		DELETE FROM index_entries
		WHERE record_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, recordID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
