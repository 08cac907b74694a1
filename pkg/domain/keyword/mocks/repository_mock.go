package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, entity *keyword.CrisisKeyword) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *Repository) Update(ctx context.Context, entity *keyword.CrisisKeyword) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *Repository) Get(ctx context.Context, id uuid.UUID) (*keyword.CrisisKeyword, error) {
	args := m.Called(ctx, id)
	entity, ok := args.Get(0).(*keyword.CrisisKeyword)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *keyword.CrisisKeyword, got %T", args.Get(0))
	}
	return entity, args.Error(1)
}

func (m *Repository) List(ctx context.Context) ([]keyword.CrisisKeyword, error) {
	args := m.Called(ctx)
	entities, ok := args.Get(0).([]keyword.CrisisKeyword)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []keyword.CrisisKeyword, got %T", args.Get(0))
	}
	return entities, args.Error(1)
}

func (m *Repository) ListActive(ctx context.Context) ([]keyword.CrisisKeyword, error) {
	args := m.Called(ctx)
	entities, ok := args.Get(0).([]keyword.CrisisKeyword)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []keyword.CrisisKeyword, got %T", args.Get(0))
	}
	return entities, args.Error(1)
}
