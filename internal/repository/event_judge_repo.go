package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// EventJudgeRepository 赛事评委分配数据访问接口
type EventJudgeRepository interface {
	Assign(ctx context.Context, ej *model.EventJudge) error
	Remove(ctx context.Context, eventID, judgeID string) error
	IsAssigned(ctx context.Context, eventID, judgeID string) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.EventJudge, error)
}

type eventJudgeRepo struct {
	db *gorm.DB
}

// NewEventJudgeRepo 创建 EventJudgeRepository 实例
func NewEventJudgeRepo(db *gorm.DB) EventJudgeRepository {
	return &eventJudgeRepo{db: db}
}

func (r *eventJudgeRepo) Assign(ctx context.Context, ej *model.EventJudge) error {
	return r.db.WithContext(ctx).Create(ej).Error
}

func (r *eventJudgeRepo) Remove(ctx context.Context, eventID, judgeID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND judge_id = ?", eventID, judgeID).
		Delete(&model.EventJudge{}).Error
}

func (r *eventJudgeRepo) IsAssigned(ctx context.Context, eventID, judgeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventJudge{}).
		Where("event_id = ? AND judge_id = ?", eventID, judgeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *eventJudgeRepo) ListByEvent(ctx context.Context, eventID string) ([]model.EventJudge, error) {
	var judges []model.EventJudge
	err := r.db.WithContext(ctx).
		Preload("Judge").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&judges).Error
	if err != nil {
		return nil, err
	}
	return judges, nil
}
