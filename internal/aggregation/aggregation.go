// Package aggregation accumulates independently submitted ciphertexts into
// one encrypted running sum per session.
//
// The evaluator side (Store) only ever multiplies ciphertexts. Division for
// the average happens in Average, on the key owner's side, after decryption.
package aggregation

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
)

// Snapshot is the accumulated state of a session at one point in time.
type Snapshot struct {
	SessionID string
	PublicKey *paillier.PublicKey
	Sum       *paillier.Ciphertext
	Count     int64
}

// Store keeps aggregation sessions.
//
// Submit must be linearizable per session: concurrent submissions never lose
// an update. Finalize returns a consistent snapshot, never a partially
// updated sum, and may run concurrently with Submit. Duplicate submissions
// are counted every time.
type Store interface {
	Submit(ctx context.Context, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (int64, error)
	Finalize(ctx context.Context, sessionID string) (*Snapshot, error)
}

// Accumulate applies one submission to a snapshot, the step shared by every
// Store implementation. A nil prev starts a new session seeded with ct.
func Accumulate(prev *Snapshot, sessionID string, pk *paillier.PublicKey, ct *paillier.Ciphertext) (*Snapshot, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	if err := ct.CheckRange(pk); err != nil {
		return nil, err
	}

	if prev == nil || prev.Count == 0 {
		return &Snapshot{SessionID: sessionID, PublicKey: pk, Sum: ct, Count: 1}, nil
	}

	if !prev.PublicKey.Equal(pk) {
		return nil, fmt.Errorf("%w: session %s", common.ErrKeyMismatch, sessionID)
	}

	sum, err := paillier.Add(pk, prev.Sum, ct)
	if err != nil {
		return nil, err
	}
	return &Snapshot{SessionID: sessionID, PublicKey: prev.PublicKey, Sum: sum, Count: prev.Count + 1}, nil
}

// Result is a decrypted session: the plaintext sum, the submission count and
// their exact quotient.
type Result struct {
	Sum     *big.Int
	Count   int64
	Average *big.Rat
}

// Reveal decrypts the accumulated sum once and derives the average from it.
// It runs on the key owner's side only.
func Reveal(sk *paillier.PrivateKey, pk *paillier.PublicKey, s *Snapshot) (*Result, error) {
	if s == nil || s.Count <= 0 {
		return nil, common.ErrEmptySession
	}
	sum, err := paillier.Decrypt(sk, pk, s.Sum)
	if err != nil {
		return nil, err
	}
	return &Result{
		Sum:     sum,
		Count:   s.Count,
		Average: new(big.Rat).SetFrac(sum, big.NewInt(s.Count)),
	}, nil
}

// Average is Reveal reduced to the quotient.
func Average(sk *paillier.PrivateKey, pk *paillier.PublicKey, s *Snapshot) (*big.Rat, error) {
	r, err := Reveal(sk, pk, s)
	if err != nil {
		return nil, err
	}
	return r.Average, nil
}
