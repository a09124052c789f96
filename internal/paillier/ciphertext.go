package paillier

import (
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/common"
)

// Ciphertext carries one plaintext under one public key. Two encryptions of
// the same value differ, so ciphertexts must never be compared to infer
// anything about plaintexts.
type Ciphertext struct {
	c *big.Int
}

// NewCiphertext wraps a raw value. Range checks happen against a key in
// CheckRange, Add and Decrypt.
func NewCiphertext(c *big.Int) *Ciphertext {
	if c == nil {
		return &Ciphertext{}
	}
	return &Ciphertext{c: new(big.Int).Set(c)}
}

// ParseCiphertext decodes the decimal text form.
func ParseCiphertext(s string) (*Ciphertext, error) {
	ct := &Ciphertext{}
	if err := ct.UnmarshalText([]byte(s)); err != nil {
		return nil, err
	}
	return ct, nil
}

// Int returns a copy of the underlying integer, or nil for an empty value.
func (ct *Ciphertext) Int() *big.Int {
	if ct == nil || ct.c == nil {
		return nil
	}
	return new(big.Int).Set(ct.c)
}

// BitLen is safe to log; the value itself is not.
func (ct *Ciphertext) BitLen() int {
	if ct == nil || ct.c == nil {
		return 0
	}
	return ct.c.BitLen()
}

// Equal compares raw integers. It exists for tests and storage round trips,
// not for reasoning about plaintexts.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct == nil || other == nil || ct.c == nil || other.c == nil {
		return false
	}
	return ct.c.Cmp(other.c) == 0
}

func (ct *Ciphertext) String() string {
	if ct == nil || ct.c == nil {
		return ""
	}
	return ct.c.String()
}

// CheckRange verifies 0 <= c < n² and gcd(c, n) = 1. Every honest
// encryption is a unit mod n²; anything else would drive L below zero.
func (ct *Ciphertext) CheckRange(pk *PublicKey) error {
	if ct == nil || ct.c == nil {
		return fmt.Errorf("%w: empty ciphertext", common.ErrRange)
	}
	if ct.c.Sign() < 0 || ct.c.Cmp(pk.NSquared()) >= 0 {
		return fmt.Errorf("%w: ciphertext outside [0, n^2)", common.ErrRange)
	}
	if new(big.Int).GCD(nil, nil, ct.c, pk.N).Cmp(one) != 0 {
		return fmt.Errorf("%w: ciphertext shares a factor with n", common.ErrRange)
	}
	return nil
}

func (ct Ciphertext) MarshalText() ([]byte, error) {
	if ct.c == nil {
		return nil, fmt.Errorf("%w: empty ciphertext", common.ErrRange)
	}
	return []byte(ct.c.String()), nil
}

func (ct *Ciphertext) UnmarshalText(b []byte) error {
	v, err := parseDecimal("ciphertext", string(b))
	if err != nil {
		return err
	}
	ct.c = v
	return nil
}
