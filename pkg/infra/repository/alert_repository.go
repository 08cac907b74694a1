package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
	domainerrors "github.com/mindhaven/guardrail/pkg/domain/errors"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) alert.Repository {
	return &AlertRepository{
		db: db,
	}
}

func (r *AlertRepository) Create(ctx context.Context, entity *alert.Alert) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("%w: %v", alert.ErrAlertPersistence, err)
	}
	return nil
}

func (r *AlertRepository) List(
	ctx context.Context,
	resolved *bool,
	limit, offset int,
) ([]alert.Alert, error) {
	query := r.db.WithContext(ctx).Model(&alert.Alert{})
	if resolved != nil {
		query = query.Where("resolved = ?", *resolved)
	}

	var alerts []alert.Alert
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error
	return alerts, err
}

func (r *AlertRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&alert.Alert{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_at": time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return domainerrors.NewNotFoundError("alert", id)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.NewNotFoundError("alert", id)
	}
	return nil
}
