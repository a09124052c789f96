package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/client/models"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/membership"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// fakeKeys is a KeySource over a fixed pair; a nil pair behaves like an
// empty key store.
type fakeKeys struct {
	kp *paillier.KeyPair
}

func (f *fakeKeys) Load(context.Context) (*paillier.KeyPair, error) {
	if f.kp == nil {
		return nil, common.ErrorNotFound
	}
	return f.kp, nil
}

func (f *fakeKeys) Public(context.Context) (*paillier.PublicKey, error) {
	if f.kp == nil {
		return nil, common.ErrorNotFound
	}
	return f.kp.Public, nil
}

// fakeEvaluator implements client.Client in process, with the same core
// packages the real evaluator uses.
type fakeEvaluator struct {
	mu      sync.Mutex
	store   *aggregation.MemoryStore
	domain  []string
	index   *trapdoor.MemoryIndex
	records map[string]*models.Record
	nextID  int

	membershipOverride *paillier.Ciphertext

	searchCalls int
	lastTokens  []trapdoor.Token
	deleted     []string
}

func newFakeEvaluator(domain ...string) *fakeEvaluator {
	return &fakeEvaluator{
		store:   aggregation.NewMemoryStore(),
		domain:  domain,
		index:   trapdoor.NewMemoryIndex(),
		records: make(map[string]*models.Record),
	}
}

func (f *fakeEvaluator) Close() error                   { return nil }
func (f *fakeEvaluator) Ping(ctx context.Context) error { return nil }

func (f *fakeEvaluator) GetDomain(ctx context.Context) ([]string, error) {
	return f.domain, nil
}

func (f *fakeEvaluator) Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error) {
	return f.store.Submit(ctx, sessionID, pk, ct)
}

func (f *fakeEvaluator) Finalize(ctx context.Context, sessionID string) (*aggregation.Snapshot, error) {
	return f.store.Finalize(ctx, sessionID)
}

func (f *fakeEvaluator) Membership(ctx context.Context, pk *paillier.PublicKey, query []*paillier.Ciphertext) (*paillier.Ciphertext, error) {
	if f.membershipOverride != nil {
		return f.membershipOverride, nil
	}
	return membership.Evaluate(pk, len(f.domain), query)
}

func (f *fakeEvaluator) StoreRecord(ctx context.Context, conversationID string, payload []byte, tokens []trapdoor.Token) (string, error) {
	f.mu.Lock()
	f.nextID++
	id := fmt.Sprintf("r%d", f.nextID)
	f.records[id] = &models.Record{ID: id, ConversationID: conversationID, SenderID: "alice", Payload: payload}
	f.lastTokens = tokens
	f.mu.Unlock()

	return id, f.index.Add(ctx, id, tokens)
}

func (f *fakeEvaluator) Search(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()

	ids, err := f.index.Query(ctx, token)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := f.records[id]; ok && r.ConversationID == conversationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEvaluator) DeleteRecord(ctx context.Context, recordID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[recordID]; !ok {
		return common.ErrorNotFound
	}
	delete(f.records, recordID)
	f.deleted = append(f.deleted, recordID)
	return f.index.Remove(ctx, recordID)
}

func testKeys(t *testing.T) *paillier.KeyPair {
	t.Helper()
	kp, err := paillier.GenerateKeys(context.Background(), 128)
	require.NoError(t, err)
	return kp
}
