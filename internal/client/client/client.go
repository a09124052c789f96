package client

import (
	"context"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/client/models"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

// Client is the evaluator API as the key owner sees it: every value that
// crosses it is either public or encrypted.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	GetDomain(ctx context.Context) ([]string, error)
	Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error)
	Finalize(ctx context.Context, sessionID string) (*aggregation.Snapshot, error)
	Membership(ctx context.Context, pk *paillier.PublicKey, query []*paillier.Ciphertext) (*paillier.Ciphertext, error)
	StoreRecord(ctx context.Context, conversationID string, payload []byte, tokens []trapdoor.Token) (string, error)
	Search(ctx context.Context, conversationID string, token trapdoor.Token) ([]*models.Record, error)
	DeleteRecord(ctx context.Context, recordID string) error
}
