package guardraillog

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, clientID *uuid.UUID, limit, offset int) ([]Entry, error)
}
