package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openradar/regrid/internal/store/model"
)

type Item interface {
	Create(ctx context.Context, item model.RunItem) (*model.RunItem, error)
	List(ctx context.Context, runID uuid.UUID) (model.RunItemList, error)
	FailedTokens(ctx context.Context, runID uuid.UUID) ([]string, error)
}

type ItemStore struct {
	db *gorm.DB
}

// Make sure we conform to Item interface
var _ Item = (*ItemStore)(nil)

func NewItem(db *gorm.DB) Item {
	return &ItemStore{db: db}
}

func (s *ItemStore) Create(ctx context.Context, item model.RunItem) (*model.RunItem, error) {
	if result := s.db.WithContext(ctx).Create(&item); result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (s *ItemStore) List(ctx context.Context, runID uuid.UUID) (model.RunItemList, error) {
	var items model.RunItemList
	result := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("path").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// FailedTokens returns the distinct tokens of every failed item of a run,
// sorted. This is the bad list the next reprocessing run starts from.
func (s *ItemStore) FailedTokens(ctx context.Context, runID uuid.UUID) ([]string, error) {
	var tokens []string
	result := s.db.WithContext(ctx).
		Model(&model.RunItem{}).
		Distinct("token").
		Where("run_id = ? AND status = ?", runID, model.RunItemStatusFailed).
		Order("token").
		Pluck("token", &tokens)
	if result.Error != nil {
		return nil, result.Error
	}
	return tokens, nil
}
