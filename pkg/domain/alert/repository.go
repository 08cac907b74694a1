package alert

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, entity *Alert) error
	List(ctx context.Context, resolved *bool, limit, offset int) ([]Alert, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}
