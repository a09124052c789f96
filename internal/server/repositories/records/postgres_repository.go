// Package records provides a PostgreSQL-backed repository for the opaque
// records the evaluator keeps on behalf of conversations.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/server/models"
)

// PostgresRepository works over dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores r and fills r.CreatedAt from the database clock.
func (r *PostgresRepository) Insert(ctx context.Context, rec *models.Record) error {
	query := `
		INSERT INTO records (id, conversation_id, sender_id, payload, blob_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, rec.ID, rec.ConversationID, rec.SenderID, rec.Payload, rec.BlobKey).
		Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

// Get returns common.ErrorNotFound when no record has the id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Record, error) {
	query := `
		SELECT id, conversation_id, sender_id, payload, blob_key, created_at
		FROM records
		WHERE id = $1
	`
	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&rec.ID, &rec.ConversationID, &rec.SenderID, &rec.Payload, &rec.BlobKey, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// Delete removes the record; its index entries go with it through the
// foreign key. Deleting a missing id returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM records
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
