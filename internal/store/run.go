package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openradar/regrid/internal/store/model"
)

type Run interface {
	Create(ctx context.Context, run model.Run) (*model.Run, error)
	Finish(ctx context.Context, id uuid.UUID, succeeded, failed int, finishedAt time.Time) (*model.Run, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Run, error)
	Latest(ctx context.Context) (*model.Run, error)
	List(ctx context.Context) (model.RunList, error)
}

type RunStore struct {
	db *gorm.DB
}

// Make sure we conform to Run interface
var _ Run = (*RunStore)(nil)

func NewRun(db *gorm.DB) Run {
	return &RunStore{db: db}
}

func (s *RunStore) Create(ctx context.Context, run model.Run) (*model.Run, error) {
	if result := s.db.WithContext(ctx).Create(&run); result.Error != nil {
		return nil, result.Error
	}
	return &run, nil
}

func (s *RunStore) Finish(ctx context.Context, id uuid.UUID, succeeded, failed int, finishedAt time.Time) (*model.Run, error) {
	run := model.Run{ID: id}
	result := s.db.WithContext(ctx).Model(&run).Updates(map[string]any{
		"succeeded":   succeeded,
		"failed":      failed,
		"finished_at": finishedAt,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	return s.Get(ctx, id)
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	run := model.Run{ID: id}
	if result := s.db.WithContext(ctx).First(&run); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &run, nil
}

func (s *RunStore) Latest(ctx context.Context) (*model.Run, error) {
	var run model.Run
	if result := s.db.WithContext(ctx).Order("started_at DESC").First(&run); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &run, nil
}

func (s *RunStore) List(ctx context.Context) (model.RunList, error) {
	var runs model.RunList
	if result := s.db.WithContext(ctx).Order("started_at DESC").Find(&runs); result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}
