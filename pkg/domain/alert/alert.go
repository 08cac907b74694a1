package alert

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrAlertPersistence marks a failed alert write. Callers must not swallow
// it: a missed alert is a patient-safety gap.
var ErrAlertPersistence = errors.New("failed to persist alert")

type DetailsJSON map[string]interface{}

func (d DetailsJSON) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *DetailsJSON) Scan(value interface{}) error {
	if value == nil {
		*d = DetailsJSON{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, d)
}

// Alert is a crisis signal surfaced to the client's care team. It is only
// ever mutated by a therapist resolving it.
type Alert struct {
	ID         uuid.UUID   `json:"id" gorm:"primaryKey"`
	ClientID   uuid.UUID   `json:"client_id" gorm:"index"`
	Reason     string      `json:"reason"`
	Details    DetailsJSON `json:"details" gorm:"type:jsonb"`
	Resolved   bool        `json:"resolved"`
	CreatedAt  time.Time   `json:"created_at"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty"`
}

func (Alert) TableName() string {
	return "alerts"
}
