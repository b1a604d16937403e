package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// SubmissionRepository 作品数据访问接口
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	Update(ctx context.Context, submission *model.Submission) error
	ListByEvent(ctx context.Context, eventID string) ([]model.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	// IncrementVoteCount 投票计数 +1（与投票写入同事务调用）
	IncrementVoteCount(ctx context.Context, id string) error
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.School").
		Preload("Event").
		Where("submission_id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) Update(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.School").
		Where("event_id = ? AND status = ?", eventID, model.SubmissionSubmitted).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("event_id = ? AND status = ?", eventID, model.SubmissionSubmitted).
		Count(&count).Error
	return count, err
}

func (r *submissionRepo) IncrementVoteCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("submission_id = ?", id).
		Update("vote_count", gorm.Expr("vote_count + 1")).Error
}
