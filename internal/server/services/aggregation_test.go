package services

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationService_SubmitFinalize(t *testing.T) {
	kp := testKeys(t)
	s := NewAggregationService(aggregation.NewMemoryStore())
	ctx := context.Background()

	for i, v := range []int64{10, 20, 30} {
		n, err := s.Submit(ctx, "salaries", kp.Public, encrypt(t, kp.Public, v))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), n)
	}

	snap, err := s.Finalize(ctx, "salaries")
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Count)
	assert.Equal(t, int64(60), decrypt(t, kp, snap.Sum))
}

func TestAggregationService_Validation(t *testing.T) {
	kp := testKeys(t)
	s := NewAggregationService(aggregation.NewMemoryStore())
	ctx := context.Background()

	_, err := s.Submit(ctx, "", kp.Public, encrypt(t, kp.Public, 1))
	assert.True(t, errors.Is(err, common.ErrRange))

	bad := &paillier.PublicKey{N: big.NewInt(15), G: big.NewInt(3)}
	_, err = s.Submit(ctx, "s", bad, encrypt(t, kp.Public, 1))
	assert.True(t, errors.Is(err, common.ErrRange))

	tooBig := paillier.NewCiphertext(kp.Public.NSquared())
	_, err = s.Submit(ctx, "s", kp.Public, tooBig)
	assert.True(t, errors.Is(err, common.ErrRange))

	_, err = s.Finalize(ctx, "")
	assert.True(t, errors.Is(err, common.ErrRange))

	_, err = s.Finalize(ctx, "never")
	assert.True(t, errors.Is(err, common.ErrEmptySession))
}
