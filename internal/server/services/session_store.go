package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/server/models"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/repomanager"
)

// SessionStore is an aggregation.Store kept in PostgreSQL. Each Submit runs
// in its own transaction holding the session row lock, which serializes
// submissions to one session across evaluator instances.
type SessionStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

var _ aggregation.Store = (*SessionStore)(nil)

func NewSessionStore(db *sql.DB, repomanager repomanager.RepositoryManager) *SessionStore {
	return &SessionStore{db: db, repomanager: repomanager}
}

func (s *SessionStore) Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error) {
	var count int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		prev, err := s.lock(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		next, err := aggregation.Accumulate(prev, sessionID, pk, ct)
		if err != nil {
			return err
		}

		if prev == nil {
			inserted, err := repo.Insert(ctx, toModel(next))
			if err != nil {
				return err
			}
			if !inserted {
				// Lost the race to create the row; the winner has committed
				// by the time the lock is granted.
				if prev, err = s.lock(ctx, tx, sessionID); err != nil {
					return err
				}
				if next, err = aggregation.Accumulate(prev, sessionID, pk, ct); err != nil {
					return err
				}
				if err := repo.Update(ctx, toModel(next)); err != nil {
					return err
				}
			}
		} else if err := repo.Update(ctx, toModel(next)); err != nil {
			return err
		}

		count = next.Count
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// lock returns nil, nil when the session does not exist yet.
func (s *SessionStore) lock(ctx context.Context, tx dbx.DBTX, sessionID string) (*aggregation.Snapshot, error) {
	row, err := s.repomanager.Sessions(tx).LockForUpdate(ctx, sessionID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromModel(row)
}

func (s *SessionStore) Finalize(ctx context.Context, sessionID string) (*aggregation.Snapshot, error) {
	row, err := s.repomanager.Sessions(s.db).Get(ctx, sessionID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %s", common.ErrEmptySession, sessionID)
	}
	if err != nil {
		return nil, err
	}
	return fromModel(row)
}

func toModel(s *aggregation.Snapshot) *models.AggregationSession {
	return &models.AggregationSession{
		SessionID: s.SessionID,
		Modulus:   s.PublicKey.N.String(),
		Sum:       s.Sum.String(),
		Count:     s.Count,
	}
}

func fromModel(m *models.AggregationSession) (*aggregation.Snapshot, error) {
	n, ok := new(big.Int).SetString(m.Modulus, 10)
	if !ok {
		return nil, fmt.Errorf("%w: stored modulus of session %s is corrupt", common.ErrorInternal, m.SessionID)
	}
	sum, err := paillier.ParseCiphertext(m.Sum)
	if err != nil {
		return nil, fmt.Errorf("%w: stored sum of session %s is corrupt", common.ErrorInternal, m.SessionID)
	}
	return &aggregation.Snapshot{
		SessionID: m.SessionID,
		PublicKey: paillier.NewPublicKey(n),
		Sum:       sum,
		Count:     m.Count,
	}, nil
}
