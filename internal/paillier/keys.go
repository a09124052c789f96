// Package paillier implements the Paillier additively homomorphic
// cryptosystem in its g = n+1 form.
//
// Key generation and decryption belong to the key owner. The evaluator only
// ever needs a PublicKey and Ciphertexts: Add and Sum use no secret material.
package paillier

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/common"
)

var one = big.NewInt(1)

// PublicKey is shared freely. G is always N+1.
type PublicKey struct {
	N *big.Int
	G *big.Int
}

// PrivateKey is derived from the secret factors of N and never leaves the
// client that generated it.
type PrivateKey struct {
	Lambda *big.Int
	Mu     *big.Int
}

// KeyPair bundles both halves as produced by GenerateKeys.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// NewPublicKey builds the canonical public key for modulus n.
func NewPublicKey(n *big.Int) *PublicKey {
	return &PublicKey{N: new(big.Int).Set(n), G: new(big.Int).Add(n, one)}
}

// NSquared returns N², the ciphertext modulus.
func (pk *PublicKey) NSquared() *big.Int {
	return new(big.Int).Mul(pk.N, pk.N)
}

// Validate rejects keys that did not come from GenerateKeys in canonical form.
func (pk *PublicKey) Validate() error {
	if pk == nil || pk.N == nil || pk.G == nil {
		return fmt.Errorf("%w: incomplete public key", common.ErrRange)
	}
	if pk.N.Cmp(one) <= 0 {
		return fmt.Errorf("%w: modulus must be greater than 1", common.ErrRange)
	}
	if new(big.Int).Add(pk.N, one).Cmp(pk.G) != 0 {
		return fmt.Errorf("%w: generator must be n+1", common.ErrRange)
	}
	return nil
}

// Equal reports whether both keys share the same modulus.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil || pk.N == nil || other.N == nil {
		return false
	}
	return pk.N.Cmp(other.N) == 0
}

// Validate checks the private key fields are present and positive.
func (sk *PrivateKey) Validate() error {
	if sk == nil || sk.Lambda == nil || sk.Mu == nil {
		return fmt.Errorf("%w: incomplete private key", common.ErrRange)
	}
	if sk.Lambda.Sign() <= 0 || sk.Mu.Sign() <= 0 {
		return fmt.Errorf("%w: private key values must be positive", common.ErrRange)
	}
	return nil
}

type publicKeyJSON struct {
	N string `json:"n"`
	G string `json:"g"`
}

// MarshalJSON encodes the key as decimal strings.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	if pk.N == nil || pk.G == nil {
		return nil, fmt.Errorf("%w: incomplete public key", common.ErrRange)
	}
	return json.Marshal(publicKeyJSON{N: pk.N.String(), G: pk.G.String()})
}

// UnmarshalJSON decodes and validates a key produced by MarshalJSON.
func (pk *PublicKey) UnmarshalJSON(b []byte) error {
	var raw publicKeyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(raw.N, raw.G)
	if err != nil {
		return err
	}
	*pk = *parsed
	return nil
}

// ParsePublicKey decodes decimal n and g and validates the result.
func ParsePublicKey(n, g string) (*PublicKey, error) {
	nv, err := parseDecimal("n", n)
	if err != nil {
		return nil, err
	}
	gv, err := parseDecimal("g", g)
	if err != nil {
		return nil, err
	}
	pk := &PublicKey{N: nv, G: gv}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	return pk, nil
}

type privateKeyJSON struct {
	Lambda string `json:"lambda"`
	Mu     string `json:"mu"`
}

func (sk PrivateKey) MarshalJSON() ([]byte, error) {
	if sk.Lambda == nil || sk.Mu == nil {
		return nil, fmt.Errorf("%w: incomplete private key", common.ErrRange)
	}
	return json.Marshal(privateKeyJSON{Lambda: sk.Lambda.String(), Mu: sk.Mu.String()})
}

func (sk *PrivateKey) UnmarshalJSON(b []byte) error {
	var raw privateKeyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	lambda, err := parseDecimal("lambda", raw.Lambda)
	if err != nil {
		return err
	}
	mu, err := parseDecimal("mu", raw.Mu)
	if err != nil {
		return err
	}
	sk.Lambda, sk.Mu = lambda, mu
	return sk.Validate()
}

func parseDecimal(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is not a non-negative decimal integer", common.ErrRange, field)
	}
	return v, nil
}
