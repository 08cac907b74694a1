package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mindhaven/guardrail/pkg/cache"
	"github.com/mindhaven/guardrail/pkg/common"
	domainerrors "github.com/mindhaven/guardrail/pkg/domain/errors"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"

	"github.com/google/uuid"
)

type KeywordRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewKeywordRepository(db *gorm.DB, cache *cache.Cache) keyword.Repository {
	return &KeywordRepository{
		db:    db,
		cache: cache,
	}
}

func (r *KeywordRepository) Create(ctx context.Context, entity *keyword.CrisisKeyword) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return err
	}
	r.invalidateSnapshot(ctx)
	return nil
}

func (r *KeywordRepository) Update(ctx context.Context, entity *keyword.CrisisKeyword) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return err
	}
	r.invalidateSnapshot(ctx)
	return nil
}

func (r *KeywordRepository) Get(ctx context.Context, id uuid.UUID) (*keyword.CrisisKeyword, error) {
	var entity keyword.CrisisKeyword
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.NewNotFoundError("crisis keyword", id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *KeywordRepository) List(ctx context.Context) ([]keyword.CrisisKeyword, error) {
	var entities []keyword.CrisisKeyword
	err := r.db.WithContext(ctx).Model(&keyword.CrisisKeyword{}).
		Order("keyword asc").
		Find(&entities).Error
	return entities, err
}

func (r *KeywordRepository) ListActive(ctx context.Context) ([]keyword.CrisisKeyword, error) {
	var entities []keyword.CrisisKeyword
	err := r.db.WithContext(ctx).Model(&keyword.CrisisKeyword{}).
		Where("active = ?", true).
		Find(&entities).Error
	return entities, err
}

// invalidateSnapshot drops the cached active set so the next check sees the
// write. Failure is tolerated: the snapshot expires on its own TTL.
func (r *KeywordRepository) invalidateSnapshot(ctx context.Context) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, common.ActiveKeywordsCacheKey)
}
