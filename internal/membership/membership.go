// Package membership answers "is label t in the public domain" without the
// evaluator learning t or the answer.
//
// The querier sends one encrypted entry per domain label, 1 for the target
// and 0 elsewhere. The evaluator folds the entries with homomorphic addition
// and returns the single result, which only the querier can decrypt.
package membership

import (
	"context"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"golang.org/x/sync/errgroup"
)

// encryptWorkers caps parallel encryptions while building a query.
const encryptWorkers = 8

// Domain is the public ordered list of candidate labels known to both
// parties.
type Domain struct {
	labels []string
	index  map[string]int
}

// NewDomain rejects empty and duplicate labels, since either would make the
// one-hot encoding ambiguous.
func NewDomain(labels []string) (*Domain, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: empty domain", common.ErrVectorLength)
	}
	d := &Domain{labels: make([]string, len(labels)), index: make(map[string]int, len(labels))}
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: empty label at position %d", common.ErrRange, i)
		}
		if _, dup := d.index[l]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", common.ErrRange, l)
		}
		d.labels[i] = l
		d.index[l] = i
	}
	return d, nil
}

func (d *Domain) Size() int { return len(d.labels) }

// Labels returns a copy of the ordered labels.
func (d *Domain) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// IndexOf returns the position of label, or -1.
func (d *Domain) IndexOf(label string) int {
	if i, ok := d.index[label]; ok {
		return i
	}
	return -1
}

// OneHot returns the plaintext query vector for target. A target outside the
// domain gives an all-zero vector.
func (d *Domain) OneHot(target string) []int64 {
	v := make([]int64, len(d.labels))
	if i := d.IndexOf(target); i >= 0 {
		v[i] = 1
	}
	return v
}

// BuildQuery encrypts the one-hot vector for target entry by entry, each with
// its own blinding factor. Runs on the querier's side.
func BuildQuery(ctx context.Context, pk *paillier.PublicKey, d *Domain, target string) ([]*paillier.Ciphertext, error) {
	plain := d.OneHot(target)
	out := make([]*paillier.Ciphertext, len(plain))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(encryptWorkers)
	for i, v := range plain {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ct, err := paillier.EncryptInt64(pk, v)
			if err != nil {
				return err
			}
			out[i] = ct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Evaluate folds the query into one ciphertext. It runs on the evaluator and
// needs only the public key and the domain size it already knows.
func Evaluate(pk *paillier.PublicKey, domainSize int, query []*paillier.Ciphertext) (*paillier.Ciphertext, error) {
	if len(query) != domainSize {
		return nil, fmt.Errorf("%w: got %d entries, domain has %d", common.ErrVectorLength, len(query), domainSize)
	}
	return paillier.Sum(pk, query...)
}

// Interpret decrypts the evaluator's result. A well-formed query always
// decrypts to 0 or 1; anything else is reported as ErrMalformedResult rather
// than treated as an answer.
func Interpret(sk *paillier.PrivateKey, pk *paillier.PublicKey, result *paillier.Ciphertext) (bool, error) {
	m, err := paillier.Decrypt(sk, pk, result)
	if err != nil {
		return false, err
	}
	switch {
	case m.Sign() == 0:
		return false, nil
	case m.Cmp(big.NewInt(1)) == 0:
		return true, nil
	default:
		return false, fmt.Errorf("%w: decrypted to %s", common.ErrMalformedResult, m)
	}
}
