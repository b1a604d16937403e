package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// BadgeRepository 徽章数据访问接口
type BadgeRepository interface {
	// UpsertBySubmission 按 submission_id 幂等写入：
	// 已存在时保留 credential_id 与 issued_at，仅刷新名次相关字段
	UpsertBySubmission(ctx context.Context, badge *model.Badge) error
	GetByCredentialID(ctx context.Context, credentialID string) (*model.Badge, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (*model.Badge, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Badge, error)
}

type badgeRepo struct {
	db *gorm.DB
}

// NewBadgeRepo 创建 BadgeRepository 实例
func NewBadgeRepo(db *gorm.DB) BadgeRepository {
	return &badgeRepo{db: db}
}

func (r *badgeRepo) UpsertBySubmission(ctx context.Context, badge *model.Badge) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "submission_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"tier":           badge.Tier,
				"rank":           badge.Rank,
				"weighted_score": badge.WeightedScore,
				"student_name":   badge.StudentName,
				"school_name":    badge.SchoolName,
				"event_title":    badge.EventTitle,
				"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(badge).Error
}

func (r *badgeRepo) GetByCredentialID(ctx context.Context, credentialID string) (*model.Badge, error) {
	var badge model.Badge
	err := r.db.WithContext(ctx).
		Where("credential_id = ?", credentialID).
		First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepo) GetBySubmissionID(ctx context.Context, submissionID string) (*model.Badge, error) {
	var badge model.Badge
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&badge).Error
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("rank ASC").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}
