package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/logging"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/records"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blindcalc/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeRepoManager struct {
	repomanager.RepositoryManager
	r *fakeRecordsRepo
	t *fakeTokensRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) Records(dbx.DBTX) records.Repository   { return m.r }
func (m *fakeRepoManager) Tokens(dbx.DBTX) trapdoor.Index         { return m.t }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository { return m.s }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testKeys(t *testing.T) *paillier.KeyPair {
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

func decrypt(t *testing.T, kp *paillier.KeyPair, ct *paillier.Ciphertext) int64 {
	t.Helper()
	m, err := paillier.Decrypt(kp.Private, kp.Public, ct)
	require.NoError(t, err)
	return m.Int64()
}
