package records

import (
	"context"

	"github.com/dmitrijs2005/blindcalc/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, r *models.Record) error
	Get(ctx context.Context, id string) (*models.Record, error)
	Delete(ctx context.Context, id string) error
}
