package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
	"github.com/jithuth/competeskool-final-sub001/pkg/metrics"
)

// ── 结果模块业务错误 ──

var (
	ErrComputeNotAllowed   = errors.New("当前状态不允许计算结果")
	ErrResultsPublished    = errors.New("结果已发布，禁止重新计算")
	ErrResultsNotPublished = errors.New("结果尚未发布")
	ErrPublishNotAllowed   = errors.New("只有复核阶段的赛事可以发布结果")
)

// ResultService 结果计算与发布业务接口
type ResultService interface {
	// ComputeResults 聚合评分、排名、定档并铸发徽章；可重复执行
	ComputeResults(ctx context.Context, eventID, callerID string) (*dto.ComputeResultsResponse, error)
	// Publish 复核通过后发布结果，解锁公开读取
	Publish(ctx context.Context, eventID, callerID string) error
	// Leaderboard 公开排行榜，仅已发布的赛事可见
	Leaderboard(ctx context.Context, eventID string) (*dto.LeaderboardResponse, error)
}

type resultService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResultService 创建 ResultService 实例
func NewResultService(repo *repository.Repository, logger *zap.Logger) ResultService {
	return &resultService{repo: repo, logger: logger}
}

// rankedSubmission 排名中间结果
type rankedSubmission struct {
	submission    *model.Submission
	weightedScore float64
	rank          int
	tier          string
}

// ────────────────────── ComputeResults ──────────────────────

func (s *resultService) ComputeResults(ctx context.Context, eventID, callerID string) (*dto.ComputeResultsResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// 发布后的结果冻结；如需重算必须先由管理员回退状态
	switch event.ResultsStatus {
	case model.ResultsScoringLocked, model.ResultsReview:
		// 允许
	case model.ResultsPublished:
		return nil, ErrResultsPublished
	default:
		return nil, ErrComputeNotAllowed
	}

	submissions, err := s.repo.Submission.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ranked := make([]rankedSubmission, 0, len(submissions))
	unscored := 0
	for i := range submissions {
		rows, err := s.repo.Score.ListWithWeights(ctx, submissions[i].SubmissionID)
		if err != nil {
			return nil, err
		}
		score, ok := computeWeightedScore(rows)
		if !ok {
			// 无任何有效评分的作品不参与排名
			unscored++
			continue
		}
		metrics.WeightedScoreHistogram.WithLabelValues(eventID).Observe(score)
		ranked = append(ranked, rankedSubmission{
			submission:    &submissions[i],
			weightedScore: score,
		})
	}

	rankSubmissions(ranked)
	assignTiers(ranked, event.GoldCount, event.SilverCount, event.BronzeCount)

	// 按 submission_id 幂等铸发徽章：重算保留既有凭证号与颁发时间。
	// 整批放在同一事务内，中途失败不会留下半套新榜单
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for i := range ranked {
			sub := ranked[i].submission
			badge := &model.Badge{
				CredentialID:  uuid.NewString(),
				SubmissionID:  sub.SubmissionID,
				EventID:       eventID,
				Tier:          ranked[i].tier,
				Rank:          ranked[i].rank,
				WeightedScore: ranked[i].weightedScore,
				EventTitle:    event.Title,
			}
			if sub.Student != nil {
				badge.StudentName = sub.Student.Name
				if sub.Student.School != nil {
					badge.SchoolName = sub.Student.School.Name
				}
			}
			if err := txRepo.Badge.UpsertBySubmission(ctx, badge); err != nil {
				s.logger.Error("铸发徽章失败",
					zap.String("submission_id", sub.SubmissionID),
					zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("结果计算完成",
		zap.String("event_id", eventID),
		zap.Int("ranked", len(ranked)),
		zap.Int("unscored", unscored),
		zap.String("operator", callerID))

	resp := &dto.ComputeResultsResponse{
		EventID:  eventID,
		Ranked:   make([]dto.RankedSubmissionResponse, 0, len(ranked)),
		Unscored: unscored,
	}
	for i := range ranked {
		resp.Ranked = append(resp.Ranked, toRankedResponse(&ranked[i]))
	}
	return resp, nil
}

// ────────────────────── Publish ──────────────────────

func (s *resultService) Publish(ctx context.Context, eventID, callerID string) error {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if event.ResultsStatus != model.ResultsReview {
		return ErrPublishNotAllowed
	}

	affected, err := s.repo.Event.UpdateStatus(ctx, eventID, model.ResultsReview, model.ResultsPublished)
	if err != nil {
		s.logger.Error("发布结果失败", zap.String("event_id", eventID), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}

	s.logger.Info("结果已发布",
		zap.String("event_id", eventID),
		zap.String("operator", callerID))
	return nil
}

// ────────────────────── Leaderboard ──────────────────────

func (s *resultService) Leaderboard(ctx context.Context, eventID string) (*dto.LeaderboardResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.ResultsStatus != model.ResultsPublished {
		return nil, ErrResultsNotPublished
	}

	badges, err := s.repo.Badge.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// 票数与作品标题不在徽章快照内，回表补齐
	submissions, err := s.repo.Submission.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Submission, len(submissions))
	for i := range submissions {
		byID[submissions[i].SubmissionID] = &submissions[i]
	}

	resp := &dto.LeaderboardResponse{
		EventID:    eventID,
		EventTitle: event.Title,
		Entries:    make([]dto.RankedSubmissionResponse, 0, len(badges)),
	}
	for i := range badges {
		entry := dto.RankedSubmissionResponse{
			SubmissionID:  badges[i].SubmissionID,
			StudentName:   badges[i].StudentName,
			SchoolName:    badges[i].SchoolName,
			WeightedScore: badges[i].WeightedScore,
			Rank:          badges[i].Rank,
			Tier:          badges[i].Tier,
		}
		if sub, ok := byID[badges[i].SubmissionID]; ok {
			entry.Title = sub.Title
			entry.VoteCount = sub.VoteCount
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return resp, nil
}

// ── 核心计算 ──

// computeWeightedScore 计算单个作品的加权总分。
//
// 先按评委分组：每位评委的小计为 Σ(分数×权重)/Σ(权重)，
// 只计该评委实际评过的评分项；权重和为 0 的评委跳过。
// 最终得分为各评委小计的算术平均。
// 无任何有效评分时返回 (0, false)，作品不参与排名。
func computeWeightedScore(rows []model.ScoreWithWeight) (float64, bool) {
	type judgeAcc struct {
		weightedSum float64
		weightSum   float64
	}
	byJudge := make(map[string]*judgeAcc)
	for i := range rows {
		acc, ok := byJudge[rows[i].JudgeID]
		if !ok {
			acc = &judgeAcc{}
			byJudge[rows[i].JudgeID] = acc
		}
		acc.weightedSum += float64(rows[i].Score) * float64(rows[i].Weight)
		acc.weightSum += float64(rows[i].Weight)
	}

	var sum float64
	var judges int
	for _, acc := range byJudge {
		if acc.weightSum == 0 {
			continue
		}
		sum += acc.weightedSum / acc.weightSum
		judges++
	}
	if judges == 0 {
		return 0, false
	}
	return sum / float64(judges), true
}

// rankSubmissions 按加权分降序排名。
// 同分时先提交的作品在前，再按作品 ID 兜底保证全序；
// 名次为并列处理后的连续序号，不共享名次。
func rankSubmissions(ranked []rankedSubmission) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].weightedScore != ranked[j].weightedScore {
			return ranked[i].weightedScore > ranked[j].weightedScore
		}
		ti, tj := ranked[i].submission.CreatedAt, ranked[j].submission.CreatedAt
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return ranked[i].submission.SubmissionID < ranked[j].submission.SubmissionID
	})
	for i := range ranked {
		ranked[i].rank = i + 1
	}
}

// assignTiers 按赛事配置的名额切分档位
func assignTiers(ranked []rankedSubmission, gold, silver, bronze int) {
	for i := range ranked {
		switch {
		case i < gold:
			ranked[i].tier = model.TierGold
		case i < gold+silver:
			ranked[i].tier = model.TierSilver
		case i < gold+silver+bronze:
			ranked[i].tier = model.TierBronze
		default:
			ranked[i].tier = model.TierParticipant
		}
	}
}

func toRankedResponse(r *rankedSubmission) dto.RankedSubmissionResponse {
	resp := dto.RankedSubmissionResponse{
		SubmissionID:  r.submission.SubmissionID,
		Title:         r.submission.Title,
		WeightedScore: r.weightedScore,
		Rank:          r.rank,
		Tier:          r.tier,
		VoteCount:     r.submission.VoteCount,
	}
	if r.submission.Student != nil {
		resp.StudentName = r.submission.Student.Name
		if r.submission.Student.School != nil {
			resp.SchoolName = r.submission.Student.School.Name
		}
	}
	return resp
}
