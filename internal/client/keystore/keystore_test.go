package keystore

import (
	"context"
	"database/sql"
	"errors"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_MigratesSchema(t *testing.T) {
	db := openTestStore(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'metadata'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "metadata", name)
}

func TestOpen_ReopenKeepsKeys(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "keystore.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	kp, err := NewKeyService(db, 128, time.Minute).Generate(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	pk, err := NewKeyService(db, 128, time.Minute).Public(ctx)
	require.NoError(t, err)
	assert.True(t, pk.Equal(kp.Public))
}

func TestOpen_MigrationError(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	db, err := Open(context.Background(), ":memory:")
	require.EqualError(t, err, "boom")
	assert.Nil(t, db)
}

func TestKeyService_LoadBeforeGenerate(t *testing.T) {
	s := NewKeyService(openTestStore(t), 128, time.Minute)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Public(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestKeyService_GenerateThenLoad(t *testing.T) {
	ctx := context.Background()
	s := NewKeyService(openTestStore(t), 128, time.Minute)

	kp, err := s.Generate(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, kp.Public.N.BitLen(), 127)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, kp.Public.Equal(loaded.Public))
	assert.Zero(t, kp.Private.Lambda.Cmp(loaded.Private.Lambda))
	assert.Zero(t, kp.Private.Mu.Cmp(loaded.Private.Mu))

	ct, err := paillier.EncryptInt64(loaded.Public, 42)
	require.NoError(t, err)
	m, err := paillier.Decrypt(loaded.Private, loaded.Public, ct)
	require.NoError(t, err)
	assert.Zero(t, m.Cmp(big.NewInt(42)))

	pk, err := s.Public(ctx)
	require.NoError(t, err)
	assert.True(t, pk.Equal(kp.Public))
}

func TestKeyService_GenerateReplacesPair(t *testing.T) {
	ctx := context.Background()
	s := NewKeyService(openTestStore(t), 128, time.Minute)

	first, err := s.Generate(ctx)
	require.NoError(t, err)
	second, err := s.Generate(ctx)
	require.NoError(t, err)
	require.False(t, first.Public.Equal(second.Public))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Public.Equal(second.Public))
}

func TestKeyService_GenerateTimeoutKeepsPreviousPair(t *testing.T) {
	ctx := context.Background()
	s := NewKeyService(openTestStore(t), 128, 10*time.Millisecond)

	first, err := s.Generate(ctx)
	require.NoError(t, err)

	orig := generateKeys
	t.Cleanup(func() { generateKeys = orig })
	generateKeys = func(ctx context.Context, bits int) (*paillier.KeyPair, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err = s.Generate(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Public.Equal(first.Public))
}

func TestKeyService_GenerateCancelled(t *testing.T) {
	s := NewKeyService(openTestStore(t), 2048, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Generate(ctx)
	require.ErrorIs(t, err, common.ErrKeyGen)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestKeyService_CorruptStoredKey(t *testing.T) {
	ctx := context.Background()
	db := openTestStore(t)
	s := NewKeyService(db, 128, time.Minute)

	require.NoError(t, metadata.NewSQLiteRepository(db).Set(ctx, publicKeyName, []byte(`{"n":"15","g":"7"}`)))

	_, err := s.Public(ctx)
	require.ErrorIs(t, err, common.ErrRange)
	require.Contains(t, err.Error(), "decode stored public key")
}
