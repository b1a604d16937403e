package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// CriterionRepository 评分项数据访问接口
type CriterionRepository interface {
	Create(ctx context.Context, criterion *model.EvaluationCriterion) error
	GetByID(ctx context.Context, id string) (*model.EvaluationCriterion, error)
	Update(ctx context.Context, criterion *model.EvaluationCriterion) error
	Delete(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]model.EvaluationCriterion, error)
}

type criterionRepo struct {
	db *gorm.DB
}

// NewCriterionRepo 创建 CriterionRepository 实例
func NewCriterionRepo(db *gorm.DB) CriterionRepository {
	return &criterionRepo{db: db}
}

func (r *criterionRepo) Create(ctx context.Context, criterion *model.EvaluationCriterion) error {
	return r.db.WithContext(ctx).Create(criterion).Error
}

func (r *criterionRepo) GetByID(ctx context.Context, id string) (*model.EvaluationCriterion, error) {
	var criterion model.EvaluationCriterion
	err := r.db.WithContext(ctx).Where("criterion_id = ?", id).First(&criterion).Error
	if err != nil {
		return nil, err
	}
	return &criterion, nil
}

func (r *criterionRepo) Update(ctx context.Context, criterion *model.EvaluationCriterion) error {
	return r.db.WithContext(ctx).Save(criterion).Error
}

func (r *criterionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("criterion_id = ?", id).
		Delete(&model.EvaluationCriterion{}).Error
}

func (r *criterionRepo) ListByEvent(ctx context.Context, eventID string) ([]model.EvaluationCriterion, error) {
	var criteria []model.EvaluationCriterion
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("display_order ASC, created_at ASC").
		Find(&criteria).Error
	if err != nil {
		return nil, err
	}
	return criteria, nil
}
