package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User        UserRepository
	School      SchoolRepository
	Event       EventRepository
	EventJudge  EventJudgeRepository
	Criterion   CriterionRepository
	Submission  SubmissionRepository
	Score       ScoreRepository
	Badge       BadgeRepository
	Vote        VoteRepository
	SiteSetting SiteSettingRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		School:      NewSchoolRepo(db),
		Event:       NewEventRepo(db),
		EventJudge:  NewEventJudgeRepo(db),
		Criterion:   NewCriterionRepo(db),
		Submission:  NewSubmissionRepo(db),
		Score:       NewScoreRepo(db),
		Badge:       NewBadgeRepo(db),
		Vote:        NewVoteRepo(db),
		SiteSetting: NewSiteSettingRepo(db),
	}
}

// WithTx 返回绑定到事务句柄的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在事务中执行 fn，fn 返回错误时整体回滚。
// 未绑定数据库句柄时直接执行（各 Repo 字段由调用方自行组装的场景）。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
