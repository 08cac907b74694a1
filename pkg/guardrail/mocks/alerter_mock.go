package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
)

type Alerter struct {
	mock.Mock
}

func (m *Alerter) RaiseAlert(
	ctx context.Context,
	clientID uuid.UUID,
	reason string,
	details alert.DetailsJSON,
) error {
	args := m.Called(ctx, clientID, reason, details)
	return args.Error(0)
}
