package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blindcalc/internal/common"
	"github.com/dmitrijs2005/blindcalc/internal/membership"
	"github.com/dmitrijs2005/blindcalc/internal/paillier"
)

// MembershipService evaluates blind membership queries against the
// configured domain.
type MembershipService struct {
	domain         *membership.Domain
	maxQueryLength int
}

func NewMembershipService(domain *membership.Domain, maxQueryLength int) *MembershipService {
	return &MembershipService{domain: domain, maxQueryLength: maxQueryLength}
}

// Domain returns the published labels in order.
func (s *MembershipService) Domain() []string {
	return s.domain.Labels()
}

func (s *MembershipService) Evaluate(ctx context.Context, pk *paillier.PublicKey, query []*paillier.Ciphertext) (*paillier.Ciphertext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.maxQueryLength > 0 && len(query) > s.maxQueryLength {
		return nil, fmt.Errorf("%w: query has %d entries, limit is %d", common.ErrVectorLength, len(query), s.maxQueryLength)
	}
	if err := pk.Validate(); err != nil {
		return nil, err
	}
	return membership.Evaluate(pk, s.domain.Size(), query)
}
