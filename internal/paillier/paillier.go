package paillier

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/common"
)

// Encrypt computes c = g^m · r^n mod n² with a fresh blinding factor r drawn
// uniformly from [1, n) and co-prime to n. It requires 0 <= m < n.
func Encrypt(pk *PublicKey, m *big.Int) (*Ciphertext, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	if m == nil || m.Sign() < 0 || m.Cmp(pk.N) >= 0 {
		return nil, fmt.Errorf("%w: plaintext outside [0, n)", common.ErrRange)
	}

	r, err := blindingFactor(pk.N)
	if err != nil {
		return nil, err
	}

	nSquared := pk.NSquared()
	gm := new(big.Int).Exp(pk.G, m, nSquared)
	rn := new(big.Int).Exp(r, pk.N, nSquared)

	c := gm.Mul(gm, rn)
	c.Mod(c, nSquared)

	return &Ciphertext{c: c}, nil
}

// EncryptInt64 is Encrypt for small non-negative plaintexts.
func EncryptInt64(pk *PublicKey, m int64) (*Ciphertext, error) {
	return Encrypt(pk, big.NewInt(m))
}

// Decrypt recovers m = L(c^λ mod n²) · μ mod n where L(x) = (x-1)/n.
// It requires 0 <= c < n².
func Decrypt(sk *PrivateKey, pk *PublicKey, ct *Ciphertext) (*big.Int, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	if err := sk.Validate(); err != nil {
		return nil, err
	}
	if err := ct.CheckRange(pk); err != nil {
		return nil, err
	}

	nSquared := pk.NSquared()
	x := new(big.Int).Exp(ct.c, sk.Lambda, nSquared)

	// n always divides x-1 for a valid ciphertext under this key.
	l := x.Sub(x, one)
	l.Quo(l, pk.N)

	m := l.Mul(l, sk.Mu)
	m.Mod(m, pk.N)

	return m, nil
}

// Add returns a ciphertext of (a+b) mod n given ciphertexts of a and b.
func Add(pk *PublicKey, c1, c2 *Ciphertext) (*Ciphertext, error) {
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	if err := c1.CheckRange(pk); err != nil {
		return nil, err
	}
	if err := c2.CheckRange(pk); err != nil {
		return nil, err
	}
	return add(pk.NSquared(), c1, c2), nil
}

// Sum folds Add over cs from left to right. At least one ciphertext is
// required.
func Sum(pk *PublicKey, cs ...*Ciphertext) (*Ciphertext, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: nothing to sum", common.ErrVectorLength)
	}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	for i, c := range cs {
		if err := c.CheckRange(pk); err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
	}

	nSquared := pk.NSquared()
	acc := NewCiphertext(cs[0].c)
	for _, c := range cs[1:] {
		acc = add(nSquared, acc, c)
	}
	return acc, nil
}

func add(nSquared *big.Int, c1, c2 *Ciphertext) *Ciphertext {
	c := new(big.Int).Mul(c1.c, c2.c)
	c.Mod(c, nSquared)
	return &Ciphertext{c: c}
}

// blindingFactor draws r uniformly from [1, n) until gcd(r, n) = 1.
func blindingFactor(n *big.Int) (*big.Int, error) {
	upper := new(big.Int).Sub(n, one)
	for {
		r, err := rand.Int(rand.Reader, upper)
		if err != nil {
			return nil, fmt.Errorf("reading randomness: %w", err)
		}
		r.Add(r, one)
		if new(big.Int).GCD(nil, nil, r, n).Cmp(one) == 0 {
			return r, nil
		}
	}
}
