package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/guardrail"
)

type Detector struct {
	mock.Mock
}

func (m *Detector) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *Detector) Detect(ctx context.Context, text string) (*guardrail.Signal, error) {
	args := m.Called(ctx, text)
	signal, ok := args.Get(0).(*guardrail.Signal)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *guardrail.Signal, got %T", args.Get(0))
	}
	return signal, args.Error(1)
}
