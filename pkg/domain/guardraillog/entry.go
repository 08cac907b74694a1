package guardraillog

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Entry is an append-only audit record. One row is written per blocked or
// erroring message; allowed messages are not logged.
type Entry struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey"`
	ClientID  uuid.UUID `json:"client_id" gorm:"index"`
	Direction Direction `json:"direction"`
	Reason    string    `json:"reason"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Entry) TableName() string {
	return "guardrail_logs"
}
