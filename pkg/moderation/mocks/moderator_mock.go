package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/moderation"
)

type Moderator struct {
	mock.Mock
}

func (m *Moderator) Moderate(ctx context.Context, text string) (moderation.Verdict, error) {
	args := m.Called(ctx, text)
	verdict, ok := args.Get(0).(moderation.Verdict)
	if !ok && args.Get(0) != nil {
		return moderation.Verdict{}, fmt.Errorf("expected moderation.Verdict, got %T", args.Get(0))
	}
	return verdict, args.Error(1)
}
