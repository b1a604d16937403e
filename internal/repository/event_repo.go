package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// EventRepository 赛事数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string, offset, limit int) ([]model.Event, int64, error)
	// UpdateStatus 仅更新 results_status（带前置状态条件，防并发双写）
	UpdateStatus(ctx context.Context, id, from, to string) (int64, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Criteria", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("event_id = ?", id).Delete(&model.Event{}).Error
}

func (r *eventRepo) List(ctx context.Context, status string, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Event{})
	if status != "" {
		db = db.Where("results_status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("start_date DESC").
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepo) UpdateStatus(ctx context.Context, id, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ? AND results_status = ?", id, from).
		Update("results_status", to)
	return res.RowsAffected, res.Error
}
