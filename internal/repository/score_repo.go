package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// ScoreRepository 评分数据访问接口
type ScoreRepository interface {
	// Upsert 按 (submission_id, criterion_id, judge_id) 三元组写入，冲突时覆盖
	Upsert(ctx context.Context, score *model.SubmissionScore) error
	ListBySubmission(ctx context.Context, submissionID string) ([]model.SubmissionScore, error)
	// ListWithWeights 联查评分与评分项权重，返回显式投影（聚合计算用）
	ListWithWeights(ctx context.Context, submissionID string) ([]model.ScoreWithWeight, error)
	// CountDistinctSubmissions 评委在某赛事下已评的作品数（去重）
	CountDistinctSubmissions(ctx context.Context, eventID, judgeID string) (int64, error)
}

type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

func (r *scoreRepo) Upsert(ctx context.Context, score *model.SubmissionScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "submission_id"},
				{Name: "criterion_id"},
				{Name: "judge_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      score.Score,
				"feedback":   score.Feedback,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(score).Error
}

func (r *scoreRepo) ListBySubmission(ctx context.Context, submissionID string) ([]model.SubmissionScore, error) {
	var scores []model.SubmissionScore
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("judge_id ASC, criterion_id ASC").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepo) ListWithWeights(ctx context.Context, submissionID string) ([]model.ScoreWithWeight, error) {
	var rows []model.ScoreWithWeight
	err := r.db.WithContext(ctx).
		Table("submission_scores AS s").
		Select("s.submission_id, s.criterion_id, s.judge_id, s.score, c.weight").
		Joins("JOIN evaluation_criteria AS c ON c.criterion_id = s.criterion_id").
		Where("s.submission_id = ?", submissionID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scoreRepo) CountDistinctSubmissions(ctx context.Context, eventID, judgeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("submission_scores AS s").
		Joins("JOIN submissions AS sub ON sub.submission_id = s.submission_id").
		Where("sub.event_id = ? AND s.judge_id = ?", eventID, judgeID).
		Distinct("s.submission_id").
		Count(&count).Error
	return count, err
}
