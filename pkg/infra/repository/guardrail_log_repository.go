package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindhaven/guardrail/pkg/domain/guardraillog"
)

type GuardrailLogRepository struct {
	db         *gorm.DB
	logRawText bool
}

// NewGuardrailLogRepository stores guardrail audit entries. With logRawText
// disabled the message text is redacted before the row is written; the
// decision metadata is always kept.
func NewGuardrailLogRepository(db *gorm.DB, logRawText bool) guardraillog.Repository {
	return &GuardrailLogRepository{
		db:         db,
		logRawText: logRawText,
	}
}

func (r *GuardrailLogRepository) Create(ctx context.Context, entry *guardraillog.Entry) error {
	if !r.logRawText {
		redacted := *entry
		redacted.RawText = ""
		return r.db.WithContext(ctx).Create(&redacted).Error
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GuardrailLogRepository) List(
	ctx context.Context,
	clientID *uuid.UUID,
	limit, offset int,
) ([]guardraillog.Entry, error) {
	query := r.db.WithContext(ctx).Model(&guardraillog.Entry{})
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	var entries []guardraillog.Entry
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}
