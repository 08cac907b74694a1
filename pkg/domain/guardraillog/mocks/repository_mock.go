package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/domain/guardraillog"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, entry *guardraillog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *Repository) List(
	ctx context.Context,
	clientID *uuid.UUID,
	limit, offset int,
) ([]guardraillog.Entry, error) {
	args := m.Called(ctx, clientID, limit, offset)
	entries, ok := args.Get(0).([]guardraillog.Entry)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []guardraillog.Entry, got %T", args.Get(0))
	}
	return entries, args.Error(1)
}
