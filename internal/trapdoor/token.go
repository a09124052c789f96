// Package trapdoor derives one-way search tokens from keywords and keeps the
// token → record index the evaluator matches against.
//
// Tokens are produced by key holders. The evaluator only stores tokens and
// compares them for equality; it never sees a keyword or a secret.
package trapdoor

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/zeebo/blake3"
	"golang.org/x/text/cases"
)

// TokenSize is the length of every Token in bytes.
const TokenSize = 32

const keyContext = "blindcalc 2025 trapdoor token key v1"

// Token is the keyed one-way image of a normalized keyword.
type Token [TokenSize]byte

func (t Token) String() string {
	return base64.RawURLEncoding.EncodeToString(t[:])
}

func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Token) UnmarshalText(b []byte) error {
	raw, err := base64.RawURLEncoding.DecodeString(string(b))
	if err != nil {
		return fmt.Errorf("%w: token is not base64url: %w", common.ErrRange, err)
	}
	if len(raw) != TokenSize {
		return fmt.Errorf("%w: token must be %d bytes, got %d", common.ErrRange, TokenSize, len(raw))
	}
	copy(t[:], raw)
	return nil
}

// ParseToken decodes the text form produced by Token.String.
func ParseToken(s string) (Token, error) {
	var t Token
	err := t.UnmarshalText([]byte(s))
	return t, err
}

// TokenFromBytes copies a stored token back into its fixed-size form.
func TokenFromBytes(b []byte) (Token, error) {
	var t Token
	if len(b) != TokenSize {
		return t, fmt.Errorf("%w: token must be %d bytes, got %d", common.ErrRange, TokenSize, len(b))
	}
	copy(t[:], b)
	return t, nil
}

// Normalize trims surrounding whitespace and applies Unicode case folding.
func Normalize(keyword string) string {
	return cases.Fold().String(strings.TrimSpace(keyword))
}

// DeriveToken computes the trapdoor for keyword under secret. The same
// normalized keyword and secret always give the same token; a different
// secret gives an unrelated one.
func DeriveToken(keyword string, secret []byte) (Token, error) {
	var t Token
	if len(secret) == 0 {
		return t, common.ErrInvalidSecret
	}

	key := make([]byte, 32)
	blake3.DeriveKey(keyContext, secret, key)
	defer common.WipeByteArray(key)

	h, err := blake3.NewKeyed(key)
	if err != nil {
		return t, fmt.Errorf("%w: %w", common.ErrInvalidSecret, err)
	}
	_, _ = h.Write([]byte(Normalize(keyword)))
	copy(t[:], h.Sum(nil))
	return t, nil
}

// DeriveTokens maps every keyword through DeriveToken.
func DeriveTokens(keywords []string, secret []byte) ([]Token, error) {
	out := make([]Token, 0, len(keywords))
	for _, k := range keywords {
		t, err := DeriveToken(k, secret)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
