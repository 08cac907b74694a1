package guardrail

import (
	"context"
	"strings"

	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

const WatchlistDetectorName = "crisis_watchlist"

// watchlistPhrases is the compile-time safety net behind the configurable
// keyword table. It must stay independent of the database: a misconfigured
// or emptied keyword table cannot disable it.
var watchlistPhrases = []string{
	"kill myself",
	"end my life",
	"suicide",
	"want to die",
	"better off dead",
	"hurt myself",
}

type watchlistDetector struct {
	phrases []string
}

func NewWatchlistDetector() Detector {
	return &watchlistDetector{
		phrases: watchlistPhrases,
	}
}

func (d *watchlistDetector) Name() string {
	return WatchlistDetectorName
}

func (d *watchlistDetector) Detect(_ context.Context, text string) (*Signal, error) {
	lower := strings.ToLower(text)
	for _, phrase := range d.phrases {
		if strings.Contains(lower, phrase) {
			return &Signal{
				Source:   d.Name(),
				Keyword:  phrase,
				Severity: keyword.SeverityCritical,
			}, nil
		}
	}
	return nil, nil
}
