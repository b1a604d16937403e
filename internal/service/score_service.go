package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
	"github.com/jithuth/competeskool-final-sub001/pkg/metrics"
)

// ── 评分模块业务错误 ──

var (
	ErrScoringLocked      = errors.New("当前赛事不在评分阶段")
	ErrScoreOutOfRange    = errors.New("分数必须在 0-100 之间")
	ErrJudgeNotAuthorized = errors.New("您未被分配到该赛事，无法评分")
	ErrCriterionMismatch  = errors.New("评分项不属于该作品所在赛事")
)

// ScoreService 评分业务接口
type ScoreService interface {
	// Submit 评委提交单个评分项的分数；三元组冲突时覆盖旧值
	Submit(ctx context.Context, submissionID, judgeID string, req *dto.SubmitScoreRequest) (*dto.ScoreResponse, error)
	// ListBySubmission 查询作品的全部评分记录（锁定后仍可读，供复核）
	ListBySubmission(ctx context.Context, submissionID string) ([]dto.ScoreResponse, error)
	// Progress 评委在某赛事下的评分进度
	Progress(ctx context.Context, eventID, judgeID string) (*dto.JudgeProgressResponse, error)
}

type scoreService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScoreService 创建 ScoreService 实例
func NewScoreService(repo *repository.Repository, logger *zap.Logger) ScoreService {
	return &scoreService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *scoreService) Submit(ctx context.Context, submissionID, judgeID string, req *dto.SubmitScoreRequest) (*dto.ScoreResponse, error) {
	if req.Score == nil || *req.Score < 0 || *req.Score > 100 {
		return nil, ErrScoreOutOfRange
	}

	submission, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if submission.Status == model.SubmissionWithdrawn {
		return nil, ErrSubmissionWithdrawn
	}

	event, err := s.repo.Event.GetByID(ctx, submission.EventID)
	if err != nil {
		return nil, err
	}
	// 生命周期闸门：只有 scoring_open 阶段接受写入
	if event.ResultsStatus != model.ResultsScoringOpen {
		return nil, ErrScoringLocked
	}

	// 评委分配关系在服务端强校验，不信任客户端
	assigned, err := s.repo.EventJudge.IsAssigned(ctx, event.EventID, judgeID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrJudgeNotAuthorized
	}

	criterion, err := s.repo.Criterion.GetByID(ctx, req.CriterionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCriterionNotFound
		}
		return nil, err
	}
	if criterion.EventID != event.EventID {
		return nil, ErrCriterionMismatch
	}

	score := &model.SubmissionScore{
		SubmissionID: submissionID,
		CriterionID:  req.CriterionID,
		JudgeID:      judgeID,
		Score:        *req.Score,
		Feedback:     req.Feedback,
	}
	if err := s.repo.Score.Upsert(ctx, score); err != nil {
		s.logger.Error("提交评分失败",
			zap.String("submission_id", submissionID),
			zap.String("judge_id", judgeID),
			zap.Error(err))
		return nil, err
	}

	metrics.ScoresSubmittedTotal.WithLabelValues(event.EventID).Inc()
	s.logger.Info("评分已提交",
		zap.String("submission_id", submissionID),
		zap.String("criterion_id", req.CriterionID),
		zap.String("judge_id", judgeID),
		zap.Int("score", *req.Score))

	return toScoreResponse(score), nil
}

// ────────────────────── ListBySubmission ──────────────────────

func (s *scoreService) ListBySubmission(ctx context.Context, submissionID string) ([]dto.ScoreResponse, error) {
	if _, err := s.repo.Submission.GetByID(ctx, submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	scores, err := s.repo.Score.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ScoreResponse, 0, len(scores))
	for i := range scores {
		result = append(result, *toScoreResponse(&scores[i]))
	}
	return result, nil
}

// ────────────────────── Progress ──────────────────────

func (s *scoreService) Progress(ctx context.Context, eventID, judgeID string) (*dto.JudgeProgressResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	total, err := s.repo.Submission.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	scored, err := s.repo.Score.CountDistinctSubmissions(ctx, eventID, judgeID)
	if err != nil {
		return nil, err
	}
	// 撤回作品遗留的历史评分会使 scored 超过 total，封顶处理
	if scored > total {
		scored = total
	}

	return &dto.JudgeProgressResponse{
		EventID: eventID,
		JudgeID: judgeID,
		Scored:  int(scored),
		Total:   int(total),
	}, nil
}

// ── 内部辅助方法 ──

func toScoreResponse(score *model.SubmissionScore) *dto.ScoreResponse {
	return &dto.ScoreResponse{
		SubmissionID: score.SubmissionID,
		CriterionID:  score.CriterionID,
		JudgeID:      score.JudgeID,
		Score:        score.Score,
		Feedback:     score.Feedback,
		UpdatedAt:    score.UpdatedAt.Format(time.RFC3339),
	}
}
