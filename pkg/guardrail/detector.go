package guardrail

import (
	"context"

	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

// Signal is a crisis indication produced by a detector.
type Signal struct {
	Source   string
	Keyword  string
	Severity keyword.Severity
}

// Detector finds crisis indications in message text. The service runs two
// independent detectors over every user message: the admin-configurable
// keyword table and a compile-time watchlist. The redundancy is deliberate;
// either source must be able to trigger an alert on its own.
//
//go:generate mockery --name=Detector --dir=. --output=./mocks --filename=detector_mock.go --case=underscore --with-expecter
type Detector interface {
	Name() string
	Detect(ctx context.Context, text string) (*Signal, error)
}
