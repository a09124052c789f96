package sessions

import (
	"context"

	"github.com/dmitrijs2005/blindcalc/internal/server/models"
)

type Repository interface {
	LockForUpdate(ctx context.Context, sessionID string) (*models.AggregationSession, error)
	Get(ctx context.Context, sessionID string) (*models.AggregationSession, error)
	Insert(ctx context.Context, s *models.AggregationSession) (bool, error)
	Update(ctx context.Context, s *models.AggregationSession) error
}
