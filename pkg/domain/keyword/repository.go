package keyword

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, entity *CrisisKeyword) error
	Update(ctx context.Context, entity *CrisisKeyword) error
	Get(ctx context.Context, id uuid.UUID) (*CrisisKeyword, error)
	List(ctx context.Context) ([]CrisisKeyword, error)
	ListActive(ctx context.Context) ([]CrisisKeyword, error)
}
