package services

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/server/models"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

// RecordStore keeps records together with their index entries. Save makes
// the record visible before any of its tokens; Delete drops both.
type RecordStore interface {
	Save(ctx context.Context, rec *models.Record, tokens []trapdoor.Token) error
	Get(ctx context.Context, id string) (*models.Record, error)
	FindByToken(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRecordStore keeps records in process memory next to a
// trapdoor.MemoryIndex.
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records map[string]*models.Record
	index   *trapdoor.MemoryIndex
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		records: make(map[string]*models.Record),
		index:   trapdoor.NewMemoryIndex(),
	}
}

func (m *MemoryRecordStore) Save(ctx context.Context, rec *models.Record, tokens []trapdoor.Token) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	stored := *rec
	m.mu.Lock()
	m.records[rec.ID] = &stored
	m.mu.Unlock()

	if err := m.index.Add(ctx, rec.ID, tokens); err != nil {
		m.mu.Lock()
		delete(m.records, rec.ID)
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MemoryRecordStore) Get(ctx context.Context, id string) (*models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *rec
	return &clone, nil
}

func (m *MemoryRecordStore) FindByToken(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error) {
	ids, err := m.index.Query(ctx, token)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := m.records[id]; ok && rec.ConversationID == conversationID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sortRecords(out)
	return out, nil
}

func (m *MemoryRecordStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.records[id]
	m.mu.Unlock()
	if !ok {
		return common.ErrorNotFound
	}

	// Index entries go first so no token ever points at a missing record.
	if err := m.index.Remove(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
	return nil
}

// PostgresRecordStore keeps records and index entries in PostgreSQL. The
// foreign key from index_entries to records enforces the ordering.
type PostgresRecordStore struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostgresRecordStore(db *sql.DB, repomanager repomanager.RepositoryManager) *PostgresRecordStore {
	return &PostgresRecordStore{db: db, repomanager: repomanager}
}

func (p *PostgresRecordStore) Save(ctx context.Context, rec *models.Record, tokens []trapdoor.Token) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := p.repomanager.Records(tx).Insert(ctx, rec); err != nil {
			return err
		}
		return p.repomanager.Tokens(tx).Add(ctx, rec.ID, tokens)
	})
}

func (p *PostgresRecordStore) Get(ctx context.Context, id string) (*models.Record, error) {
	return p.repomanager.Records(p.db).Get(ctx, id)
}

func (p *PostgresRecordStore) FindByToken(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error) {
	ids, err := p.repomanager.Tokens(p.db).Query(ctx, token)
	if err != nil {
		return nil, err
	}

	repo := p.repomanager.Records(p.db)
	out := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := repo.Get(ctx, id)
		if err != nil {
			// deleted between the two reads
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return nil, err
		}
		if rec.ConversationID == conversationID {
			out = append(out, rec)
		}
	}
	sortRecords(out)
	return out, nil
}

func (p *PostgresRecordStore) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := p.repomanager.Tokens(tx).Remove(ctx, id); err != nil {
			return err
		}
		return p.repomanager.Records(tx).Delete(ctx, id)
	})
}

// sortRecords orders by creation time, then id.
func sortRecords(recs []*models.Record) {
	slices.SortFunc(recs, func(a, b *models.Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
