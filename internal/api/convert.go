package api

import (
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
	"github.com/dmitrijs2005/blindcalc/internal/trapdoor"
)

func EncodePublicKey(pk *paillier.PublicKey) *PublicKey {
	if pk == nil || pk.N == nil || pk.G == nil {
		return nil
	}
	return &PublicKey{N: pk.N.String(), G: pk.G.String()}
}

// Decode parses and validates the key. A missing key is an ErrRange.
func (p *PublicKey) Decode() (*paillier.PublicKey, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: public key is required", common.ErrRange)
	}
	return paillier.ParsePublicKey(p.N, p.G)
}

func EncodeCiphertexts(cs []*paillier.Ciphertext) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func DecodeCiphertexts(ss []string) ([]*paillier.Ciphertext, error) {
	out := make([]*paillier.Ciphertext, len(ss))
	for i, s := range ss {
		c, err := paillier.ParseCiphertext(s)
		if err != nil {
			return nil, fmt.Errorf("query[%d]: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

func EncodeTokens(ts []trapdoor.Token) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func DecodeTokens(ss []string) ([]trapdoor.Token, error) {
	out := make([]trapdoor.Token, len(ss))
	for i, s := range ss {
		t, err := trapdoor.ParseToken(s)
		if err != nil {
			return nil, fmt.Errorf("tokens[%d]: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
