package guardrail

import (
	"context"

	appkeyword "github.com/mindhaven/guardrail/pkg/app/keyword"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"
)

const KeywordDetectorName = "crisis_keyword_table"

// MatchKeyword returns the first keyword contained in text, case-insensitive.
// The caller fixes the match order by ordering the slice; ties between
// equally severe keywords are broken upstream by keyword ascending.
func MatchKeyword(text string, keywords []keyword.CrisisKeyword) *keyword.CrisisKeyword {
	for i := range keywords {
		if keywords[i].Matches(text) {
			return &keywords[i]
		}
	}
	return nil
}

type keywordDetector struct {
	finder appkeyword.Finder
}

// NewKeywordDetector checks text against a snapshot of the active keyword
// table. The snapshot is taken immediately before each check; a keyword
// deactivated moments earlier may still match, which is acceptable staleness.
func NewKeywordDetector(finder appkeyword.Finder) Detector {
	return &keywordDetector{
		finder: finder,
	}
}

func (d *keywordDetector) Name() string {
	return KeywordDetectorName
}

func (d *keywordDetector) Detect(ctx context.Context, text string) (*Signal, error) {
	keywords, err := d.finder.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := MatchKeyword(text, keywords)
	if matched == nil {
		return nil, nil
	}

	return &Signal{
		Source:   d.Name(),
		Keyword:  matched.Keyword,
		Severity: matched.Severity,
	}, nil
}
