package guardrail

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
	"github.com/mindhaven/guardrail/pkg/infra/prometheus"
)

// Alerter persists crisis alerts for the client's care team. It is not
// idempotent: every call creates a new alert row. Persistence failures are
// returned to the caller and must never be swallowed.
//
//go:generate mockery --name=Alerter --dir=. --output=./mocks --filename=alerter_mock.go --case=underscore --with-expecter
type Alerter interface {
	RaiseAlert(ctx context.Context, clientID uuid.UUID, reason string, details alert.DetailsJSON) error
}

type alerter struct {
	repo   alert.Repository
	logger *logrus.Logger
}

func NewAlerter(repo alert.Repository, logger *logrus.Logger) Alerter {
	return &alerter{
		repo:   repo,
		logger: logger,
	}
}

func (a *alerter) RaiseAlert(
	ctx context.Context,
	clientID uuid.UUID,
	reason string,
	details alert.DetailsJSON,
) error {
	id, err := uuid.NewV6()
	if err != nil {
		return err
	}

	entity := &alert.Alert{
		ID:        id,
		ClientID:  clientID,
		Reason:    reason,
		Details:   details,
		Resolved:  false,
		CreatedAt: time.Now(),
	}

	if err := a.repo.Create(ctx, entity); err != nil {
		a.logger.WithError(err).WithFields(logrus.Fields{
			"client_id": clientID,
			"reason":    reason,
		}).Error("failed to persist crisis alert")
		return err
	}

	prometheus.AlertsTotal.WithLabelValues(reason).Inc()
	a.logger.WithFields(logrus.Fields{
		"client_id": clientID,
		"reason":    reason,
	}).Warn("crisis alert raised")

	return nil
}
