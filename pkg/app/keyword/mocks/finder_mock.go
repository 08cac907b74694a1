package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

type Finder struct {
	mock.Mock
}

func (m *Finder) FindActive(ctx context.Context) ([]keyword.CrisisKeyword, error) {
	args := m.Called(ctx)
	keywords, ok := args.Get(0).([]keyword.CrisisKeyword)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []keyword.CrisisKeyword, got %T", args.Get(0))
	}
	return keywords, args.Error(1)
}
