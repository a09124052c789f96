package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
)

// AggregationService accepts encrypted submissions and hands out encrypted
// totals. It never decrypts anything.
type AggregationService struct {
	store aggregation.Store
}

func NewAggregationService(store aggregation.Store) *AggregationService {
	return &AggregationService{store: store}
}

// Submit adds ct to the session and returns the new submission count.
func (s *AggregationService) Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error) {
	if sessionID == "" {
		return 0, fmt.Errorf("%w: session id is required", common.ErrRange)
	}
	if err := pk.Validate(); err != nil {
		return 0, err
	}
	if err := ct.CheckRange(pk); err != nil {
		return 0, err
	}
	return s.store.Submit(ctx, sessionID, pk, ct)
}

// Finalize returns the current encrypted sum and count. It can be called
// any number of times; later submissions are reflected in later calls.
func (s *AggregationService) Finalize(ctx context.Context, sessionID string) (*aggregation.Snapshot, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", common.ErrRange)
	}
	return s.store.Finalize(ctx, sessionID)
}
