package keyword

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities so a deterministic match order can be fixed.
// Higher rank means more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

func (s Severity) IsValid() bool {
	return s.Rank() > 0
}

// AlertWorthy reports whether a keyword match at this severity must raise
// a therapist alert on its own.
func (s Severity) AlertWorthy() bool {
	return s == SeverityHigh || s == SeverityCritical
}

// CrisisKeyword is an admin-configurable phrase checked against every
// message in both directions. Rows are toggled inactive rather than deleted.
type CrisisKeyword struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey"`
	Keyword   string    `json:"keyword" gorm:"uniqueIndex"`
	Severity  Severity  `json:"severity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CrisisKeyword) TableName() string {
	return "crisis_keywords"
}

// Matches reports whether the keyword occurs in text, case-insensitively.
func (k *CrisisKeyword) Matches(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(k.Keyword))
}
