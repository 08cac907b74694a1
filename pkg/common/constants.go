package common

import "time"

const (
	ActiveKeywordsCacheTTL = 1 * time.Minute

	ActiveKeywordsCacheKey = "crisis_keywords:active"
)

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}
