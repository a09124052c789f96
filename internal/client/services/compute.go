// Package services contains application services for the blindcalc client.
// This file defines the computation service: encrypted aggregation and blind
// membership, both driven by the locally stored Paillier key pair.
package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/aggregation"
	"github.com/dmitrijs2005/blindcalc/internal/client/client"
	"github.com/dmitrijs2005/blindcalc/internal/client/models"
	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/membership"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
)

// ErrNoKeyPair is returned before the first keygen.
var ErrNoKeyPair = errors.New("no key pair")

// KeySource yields the identity's keys. keystore.KeyService implements it.
type KeySource interface {
	Load(ctx context.Context) (*paillier.KeyPair, error)
	Public(ctx context.Context) (*paillier.PublicKey, error)
}

// ComputeService defines the key owner's side of the computations.
//
// Contract:
//   - SubmitValue: encrypt v locally and add it to the remote session.
//   - Average: fetch the encrypted session total, decrypt and divide locally.
//   - CheckMembership: ask whether label is in the evaluator's roster
//     without revealing label.
//
// Plaintext values and the private key never leave this process.
type ComputeService interface {
	SubmitValue(ctx context.Context, sessionID string, v *big.Int) (int64, error)
	Average(ctx context.Context, sessionID string) (*models.Aggregate, error)
	CheckMembership(ctx context.Context, label string) (bool, error)
}

type computeService struct {
	client client.Client
	keys   KeySource
}

// NewComputeService constructs a ComputeService bound to the given API
// client and key source.
func NewComputeService(client client.Client, keys KeySource) ComputeService {
	return &computeService{client: client, keys: keys}
}

// SubmitValue returns the session's submission count after this one.
func (s *computeService) SubmitValue(ctx context.Context, sessionID string, v *big.Int) (int64, error) {
	pk, err := s.keys.Public(ctx)
	if err != nil {
		return 0, keyError(err)
	}

	ct, err := paillier.Encrypt(pk, v)
	if err != nil {
		return 0, err
	}

	return s.client.Submit(ctx, sessionID, pk, ct)
}

// Average fails with common.ErrKeyMismatch when the session was started
// under a different key: its sum cannot be decrypted here.
func (s *computeService) Average(ctx context.Context, sessionID string) (*models.Aggregate, error) {
	kp, err := s.keys.Load(ctx)
	if err != nil {
		return nil, keyError(err)
	}

	snap, err := s.client.Finalize(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !snap.PublicKey.Equal(kp.Public) {
		return nil, fmt.Errorf("%w: session %s belongs to another key", common.ErrKeyMismatch, sessionID)
	}

	r, err := aggregation.Reveal(kp.Private, kp.Public, snap)
	if err != nil {
		return nil, err
	}

	return &models.Aggregate{
		SessionID: sessionID,
		Sum:       r.Sum,
		Count:     r.Count,
		Average:   r.Average,
	}, nil
}

func (s *computeService) CheckMembership(ctx context.Context, label string) (bool, error) {
	kp, err := s.keys.Load(ctx)
	if err != nil {
		return false, keyError(err)
	}

	labels, err := s.client.GetDomain(ctx)
	if err != nil {
		return false, err
	}
	domain, err := membership.NewDomain(labels)
	if err != nil {
		return false, fmt.Errorf("evaluator domain: %w", err)
	}

	query, err := membership.BuildQuery(ctx, kp.Public, domain, label)
	if err != nil {
		return false, err
	}

	result, err := s.client.Membership(ctx, kp.Public, query)
	if err != nil {
		return false, err
	}

	return membership.Interpret(kp.Private, kp.Public, result)
}

func keyError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return ErrNoKeyPair
	}
	return fmt.Errorf("load keys: %w", err)
}
