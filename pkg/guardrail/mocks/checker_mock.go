package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/guardrail"
)

type Checker struct {
	mock.Mock
}

func (m *Checker) Check(ctx context.Context, msg guardrail.Message) (guardrail.Result, error) {
	args := m.Called(ctx, msg)
	result, ok := args.Get(0).(guardrail.Result)
	if !ok && args.Get(0) != nil {
		return guardrail.Result{}, fmt.Errorf("expected guardrail.Result, got %T", args.Get(0))
	}
	return result, args.Error(1)
}
