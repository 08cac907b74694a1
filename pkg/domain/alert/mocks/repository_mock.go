package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, entity *alert.Alert) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *Repository) List(
	ctx context.Context,
	resolved *bool,
	limit, offset int,
) ([]alert.Alert, error) {
	args := m.Called(ctx, resolved, limit, offset)
	alerts, ok := args.Get(0).([]alert.Alert)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []alert.Alert, got %T", args.Get(0))
	}
	return alerts, args.Error(1)
}

func (m *Repository) Resolve(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
