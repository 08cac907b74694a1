package keyword

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/mindhaven/guardrail/pkg/cache"
	"github.com/mindhaven/guardrail/pkg/common"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=finder_mock.go --case=underscore --with-expecter
type Finder interface {
	// FindActive returns a snapshot of the active keyword set in the fixed
	// match order: severity descending, then keyword ascending.
	FindActive(ctx context.Context) ([]keyword.CrisisKeyword, error)
}

type finder struct {
	repo   keyword.Repository
	cache  *cache.Cache
	logger *logrus.Logger
	ttl    time.Duration
	sf     singleflight.Group
}

func NewFinder(
	repository keyword.Repository,
	cache *cache.Cache,
	logger *logrus.Logger,
	ttl time.Duration,
) Finder {
	if ttl <= 0 {
		ttl = common.ActiveKeywordsCacheTTL
	}
	return &finder{
		repo:   repository,
		cache:  cache,
		logger: logger,
		ttl:    ttl,
	}
}

func (f *finder) FindActive(ctx context.Context) ([]keyword.CrisisKeyword, error) {
	if cached, err := f.cache.Get(ctx, common.ActiveKeywordsCacheKey); err == nil {
		var keywords []keyword.CrisisKeyword
		if err := json.Unmarshal([]byte(cached), &keywords); err == nil {
			return keywords, nil
		}
		f.logger.Warn("discarding malformed keyword snapshot from cache")
	}

	// Collapse concurrent refreshes into a single database read.
	result, err, _ := f.sf.Do(common.ActiveKeywordsCacheKey, func() (interface{}, error) {
		keywords, err := f.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		sortKeywords(keywords)

		if data, err := json.Marshal(keywords); err == nil {
			if err := f.cache.Set(ctx, common.ActiveKeywordsCacheKey, string(data), f.ttl); err != nil {
				f.logger.WithError(err).Warn("failed to cache keyword snapshot")
			}
		}
		return keywords, nil
	})
	if err != nil {
		return nil, err
	}

	keywords, ok := result.([]keyword.CrisisKeyword)
	if !ok {
		return nil, nil
	}
	return keywords, nil
}

func sortKeywords(keywords []keyword.CrisisKeyword) {
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Severity.Rank() != keywords[j].Severity.Rank() {
			return keywords[i].Severity.Rank() > keywords[j].Severity.Rank()
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})
}
