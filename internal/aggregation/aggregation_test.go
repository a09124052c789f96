package aggregation

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeys(t *testing.T) *paillier.KeyPair {
	t.Helper()
	kp, err := paillier.GenerateKeys(context.Background(), 128)
	require.NoError(t, err)
	return kp
}

func encrypt(t *testing.T, pk *paillier.PublicKey, v int64) *paillier.Ciphertext {
	t.Helper()
	ct, err := paillier.EncryptInt64(pk, v)
	require.NoError(t, err)
	return ct
}

func TestMemoryStore_SumCountAverage(t *testing.T) {
	ctx := context.Background()
	kp := newKeys(t)
	store := NewMemoryStore()

	for i, v := range []int64{10, 20, 30} {
		n, err := store.Submit(ctx, "salaries", kp.Public, encrypt(t, kp.Public, v))
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), n)
	}

	snap, err := store.Finalize(ctx, "salaries")
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Count)

	sum, err := paillier.Decrypt(kp.Private, kp.Public, snap.Sum)
	require.NoError(t, err)
	assert.Equal(t, int64(60), sum.Int64())

	avg, err := Average(kp.Private, kp.Public, snap)
	require.NoError(t, err)
	f, _ := avg.Float64()
	assert.Equal(t, 20.0, f)
}

func TestMemoryStore_FinalizeIsRepeatableAndSideEffectFree(t *testing.T) {
	ctx := context.Background()
	kp := newKeys(t)
	store := NewMemoryStore()

	_, err := store.Submit(ctx, "s", kp.Public, encrypt(t, kp.Public, 5))
	require.NoError(t, err)

	first, err := store.Finalize(ctx, "s")
	require.NoError(t, err)
	second, err := store.Finalize(ctx, "s")
	require.NoError(t, err)

	assert.Equal(t, first.Count, second.Count)
	assert.True(t, first.Sum.Equal(second.Sum))
}

func TestMemoryStore_FinalizeEmpty(t *testing.T) {
	_, err := NewMemoryStore().Finalize(context.Background(), "nobody-submitted")
	require.ErrorIs(t, err, common.ErrEmptySession)
}

func TestMemoryStore_DuplicatesAreCounted(t *testing.T) {
	ctx := context.Background()
	kp := newKeys(t)
	store := NewMemoryStore()
	ct := encrypt(t, kp.Public, 4)

	_, err := store.Submit(ctx, "s", kp.Public, ct)
	require.NoError(t, err)
	n, err := store.Submit(ctx, "s", kp.Public, ct)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMemoryStore_KeyMismatch(t *testing.T) {
	ctx := context.Background()
	a, b := newKeys(t), newKeys(t)
	store := NewMemoryStore()

	_, err := store.Submit(ctx, "s", a.Public, encrypt(t, a.Public, 1))
	require.NoError(t, err)

	_, err = store.Submit(ctx, "s", b.Public, encrypt(t, b.Public, 1))
	require.ErrorIs(t, err, common.ErrKeyMismatch)

	snap, err := store.Finalize(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Count, "rejected submission must not be counted")
}

func TestMemoryStore_RejectsOutOfRangeCiphertext(t *testing.T) {
	kp := newKeys(t)
	_, err := NewMemoryStore().Submit(context.Background(), "s", kp.Public, paillier.NewCiphertext(kp.Public.NSquared()))
	require.ErrorIs(t, err, common.ErrRange)
}

func TestMemoryStore_RejectedFirstSubmissionCreatesNoSession(t *testing.T) {
	ctx := context.Background()
	kp := newKeys(t)
	store := NewMemoryStore()

	for i, bad := range []*paillier.Ciphertext{
		paillier.NewCiphertext(kp.Public.NSquared()),
		paillier.NewCiphertext(big.NewInt(0)),
		nil,
	} {
		_, err := store.Submit(ctx, "junk", kp.Public, bad)
		require.ErrorIsf(t, err, common.ErrRange, "case %d", i)
	}
	_, err := store.Submit(ctx, "junk", &paillier.PublicKey{}, encrypt(t, kp.Public, 1))
	require.ErrorIs(t, err, common.ErrRange)

	assert.Empty(t, store.sessions)
	_, err = store.Finalize(ctx, "junk")
	require.ErrorIs(t, err, common.ErrEmptySession)

	n, err := store.Submit(ctx, "junk", kp.Public, encrypt(t, kp.Public, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, store.sessions, 1)
}

func TestMemoryStore_ConcurrentFirstSubmissions(t *testing.T) {
	ctx := context.Background()
	kp := newKeys(t)
	store := NewMemoryStore()

	const sessions = 8
	const writers = 8

	cts := make([]*paillier.Ciphertext, writers)
	for i := range cts {
		cts[i] = encrypt(t, kp.Public, int64(i+1))
	}

	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		id := string(rune('a' + s))
		for w := 0; w < writers; w++ {
			wg.Add(1)
			go func(ct *paillier.Ciphertext) {
				defer wg.Done()
				_, err := store.Submit(ctx, id, kp.Public, ct)
				assert.NoError(t, err)
			}(cts[w])
		}
	}
	wg.Wait()

	for s := 0; s < sessions; s++ {
		snap, err := store.Finalize(ctx, string(rune('a'+s)))
		require.NoError(t, err)
		assert.Equal(t, int64(writers), snap.Count)
		sum, err := paillier.Decrypt(kp.Private, kp.Public, snap.Sum)
		require.NoError(t, err)
		assert.Equal(t, int64(writers*(writers+1)/2), sum.Int64())
	}
}

func TestMemoryStore_ConcurrentSubmitsAreLinearized(t *testing.T) {
	ctx := context.Background()
	kp := newKeys(t)
	store := NewMemoryStore()

	const workers = 16
	const perWorker = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ct, err := paillier.EncryptInt64(kp.Public, 1)
				if err != nil {
					errs <- err
					return
				}
				if _, err := store.Submit(ctx, "votes", kp.Public, ct); err != nil {
					errs <- err
				}
				if _, err := store.Finalize(ctx, "votes"); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	snap, err := store.Finalize(ctx, "votes")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), snap.Count)

	sum, err := paillier.Decrypt(kp.Private, kp.Public, snap.Sum)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), sum.Int64())
}

func TestAverage_Empty(t *testing.T) {
	kp := newKeys(t)
	_, err := Average(kp.Private, kp.Public, &Snapshot{})
	require.ErrorIs(t, err, common.ErrEmptySession)
}

func TestAverage_IsExact(t *testing.T) {
	kp := newKeys(t)
	snap := &Snapshot{PublicKey: kp.Public, Sum: encrypt(t, kp.Public, 10), Count: 4}

	avg, err := Average(kp.Private, kp.Public, snap)
	require.NoError(t, err)
	assert.Zero(t, avg.Cmp(big.NewRat(5, 2)))
}

func TestReveal_SumSurvivesNonIntegerAverage(t *testing.T) {
	kp := newKeys(t)
	snap := &Snapshot{PublicKey: kp.Public, Sum: encrypt(t, kp.Public, 70), Count: 3}

	r, err := Reveal(kp.Private, kp.Public, snap)
	require.NoError(t, err)
	assert.Equal(t, "70", r.Sum.String())
	assert.Equal(t, int64(3), r.Count)
	assert.Equal(t, "70/3", r.Average.RatString())

	// 6/4 reduces to 3/2; the sum must not be read back from the fraction.
	snap = &Snapshot{PublicKey: kp.Public, Sum: encrypt(t, kp.Public, 6), Count: 4}
	r, err = Reveal(kp.Private, kp.Public, snap)
	require.NoError(t, err)
	assert.Equal(t, "6", r.Sum.String())
	assert.Equal(t, "3/2", r.Average.RatString())

	_, err = Reveal(kp.Private, kp.Public, &Snapshot{})
	require.ErrorIs(t, err, common.ErrEmptySession)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	kp := newKeys(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Submit(ctx, "s", kp.Public, encrypt(t, kp.Public, 1))
	require.ErrorIs(t, err, context.Canceled)
}
