package keystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blindcalc/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/dbx"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
)

const (
	publicKeyName  = "paillier.public_key"
	privateKeyName = "paillier.private_key"
)

// generateKeys is a test seam for paillier.GenerateKeys.
var generateKeys = paillier.GenerateKeys

// KeyService owns the identity's key pair.
type KeyService struct {
	db      *sql.DB
	bits    int
	timeout time.Duration
}

// NewKeyService binds a KeyService to an opened key store. A zero timeout
// leaves generation bounded only by ctx.
func NewKeyService(db *sql.DB, bits int, timeout time.Duration) *KeyService {
	return &KeyService{db: db, bits: bits, timeout: timeout}
}

// Generate creates a fresh key pair and replaces the stored one. Both
// halves are written in one transaction; on any failure the previous pair
// stays in place.
func (s *KeyService) Generate(ctx context.Context) (*paillier.KeyPair, error) {
	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	kp, err := generateKeys(genCtx, s.bits)
	if err != nil {
		return nil, err
	}

	pub, err := json.Marshal(kp.Public)
	if err != nil {
		return nil, fmt.Errorf("encode public key: %w", err)
	}
	priv, err := json.Marshal(kp.Private)
	if err != nil {
		return nil, fmt.Errorf("encode private key: %w", err)
	}
	defer common.WipeByteArray(priv)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, publicKeyName, pub); err != nil {
			return err
		}
		return repo.Set(ctx, privateKeyName, priv)
	})
	if err != nil {
		return nil, err
	}
	return kp, nil
}

// Load returns the stored key pair, or common.ErrorNotFound before the
// first Generate.
func (s *KeyService) Load(ctx context.Context) (*paillier.KeyPair, error) {
	pk, err := s.Public(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, privateKeyName)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(raw)

	sk := &paillier.PrivateKey{}
	if err := json.Unmarshal(raw, sk); err != nil {
		return nil, fmt.Errorf("decode stored private key: %w", err)
	}
	return &paillier.KeyPair{Public: pk, Private: sk}, nil
}

// Public returns only the stored public key.
func (s *KeyService) Public(ctx context.Context) (*paillier.PublicKey, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, publicKeyName)
	if err != nil {
		return nil, err
	}

	pk := &paillier.PublicKey{}
	if err := json.Unmarshal(raw, pk); err != nil {
		return nil, fmt.Errorf("decode stored public key: %w", err)
	}
	return pk, nil
}
