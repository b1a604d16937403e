package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// VoteRepository 公众投票数据访问接口
//
// 并发去重完全交给 (submission_id, voter_hash) 唯一约束，
// 冲突以 gorm.ErrDuplicatedKey 形式上抛（需开启 TranslateError）。
type VoteRepository interface {
	Create(ctx context.Context, vote *model.Vote) error
	Exists(ctx context.Context, submissionID, voterHash string) (bool, error)
	CountBySubmission(ctx context.Context, submissionID string) (int64, error)
}

type voteRepo struct {
	db *gorm.DB
}

// NewVoteRepo 创建 VoteRepository 实例
func NewVoteRepo(db *gorm.DB) VoteRepository {
	return &voteRepo{db: db}
}

func (r *voteRepo) Create(ctx context.Context, vote *model.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *voteRepo) Exists(ctx context.Context, submissionID, voterHash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Vote{}).
		Where("submission_id = ? AND voter_hash = ?", submissionID, voterHash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *voteRepo) CountBySubmission(ctx context.Context, submissionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Vote{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count, err
}
