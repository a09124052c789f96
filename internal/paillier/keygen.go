package paillier

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/common"
)

const (
	// MinKeyBits is the smallest modulus GenerateKeys accepts.
	MinKeyBits = 8

	// MaxKeygenAttempts bounds the number of prime pairs tried before
	// GenerateKeys gives up.
	MaxKeygenAttempts = 64

	// primeCandidatesPerBit bounds the candidates drawn for one prime at
	// primeCandidatesPerBit*bits. The expected count is about 0.35*bits.
	primeCandidatesPerBit = 40

	// millerRabinRounds gives a false-positive bound of 4^-32 = 2^-64 on top
	// of the Baillie-PSW test ProbablyPrime always runs.
	millerRabinRounds = 32
)

// randReader is a test seam for the prime source.
var randReader io.Reader = rand.Reader

// GenerateKeys creates a key pair from two independent random primes p and q
// of bits/2 bits each, n = p*q.
//
// The search is bounded by MaxKeygenAttempts prime pairs and by ctx, which is
// checked before every prime candidate. Any failure is reported as
// common.ErrKeyGen.
func GenerateKeys(ctx context.Context, bits int) (*KeyPair, error) {
	if bits < MinKeyBits {
		return nil, fmt.Errorf("%w: bit length %d is below %d", common.ErrKeyGen, bits, MinKeyBits)
	}

	half := bits / 2
	for attempt := 0; attempt < MaxKeygenAttempts; attempt++ {
		p, err := generatePrime(ctx, half)
		if err != nil {
			return nil, err
		}
		q, err := generatePrime(ctx, half)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		if kp, ok := keysFromPrimes(p, q); ok {
			return kp, nil
		}
	}

	return nil, fmt.Errorf("%w: no usable prime pair after %d attempts", common.ErrKeyGen, MaxKeygenAttempts)
}

// generatePrime draws odd bits-bit integers with the top bit set until one
// passes the primality test.
func generatePrime(ctx context.Context, bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	excess := uint(len(buf)*8 - bits)
	limit := primeCandidatesPerBit * bits

	for i := 0; i < limit; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrKeyGen, err)
		}
		if _, err := io.ReadFull(randReader, buf); err != nil {
			return nil, fmt.Errorf("%w: reading randomness: %w", common.ErrKeyGen, err)
		}
		buf[0] &= 0xff >> excess

		p := new(big.Int).SetBytes(buf)
		p.SetBit(p, bits-1, 1)
		p.SetBit(p, 0, 1)

		if p.ProbablyPrime(millerRabinRounds) {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: no %d-bit prime after %d candidates", common.ErrKeyGen, bits, limit)
}

// keysFromPrimes derives λ = (p-1)(q-1) and μ = λ⁻¹ mod n. It reports false
// when gcd(λ, n) != 1, in which case the caller draws a new pair.
func keysFromPrimes(p, q *big.Int) (*KeyPair, bool) {
	n := new(big.Int).Mul(p, q)

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	lambda := new(big.Int).Mul(pMinus1, qMinus1)

	if new(big.Int).GCD(nil, nil, lambda, n).Cmp(one) != 0 {
		return nil, false
	}
	mu := new(big.Int).ModInverse(lambda, n)
	if mu == nil {
		return nil, false
	}

	return &KeyPair{
		Public:  NewPublicKey(n),
		Private: &PrivateKey{Lambda: lambda, Mu: mu},
	}, true
}
