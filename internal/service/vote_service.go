package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/config"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
	"github.com/jithuth/competeskool-final-sub001/pkg/metrics"
)

// ── 投票模块业务错误 ──

var (
	ErrVotingClosed = errors.New("当前赛事不在投票阶段")
	ErrAlreadyVoted = errors.New("您已为该作品投过票")
)

// VoteService 公众投票业务接口
type VoteService interface {
	// Vote 匿名投票：身份为 sha256(客户端IP+盐)，同一作品同一身份只计一票
	Vote(ctx context.Context, submissionID, clientIP string) error
}

type voteService struct {
	cfg    *config.VoteConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVoteService 创建 VoteService 实例
func NewVoteService(cfg *config.VoteConfig, repo *repository.Repository, logger *zap.Logger) VoteService {
	return &voteService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Vote ──────────────────────

func (s *voteService) Vote(ctx context.Context, submissionID, clientIP string) error {
	submission, err := s.repo.Submission.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	if submission.Status == model.SubmissionWithdrawn {
		return ErrSubmissionNotFound
	}

	event, err := s.repo.Event.GetByID(ctx, submission.EventID)
	if err != nil {
		return err
	}
	if event.ResultsStatus != model.ResultsScoringOpen {
		metrics.VotesTotal.WithLabelValues("closed").Inc()
		return ErrVotingClosed
	}

	voterHash := s.hashVoter(clientIP)

	// 重复投票先走只读快路径，省去一次必然回滚的写事务
	if voted, err := s.repo.Vote.Exists(ctx, submissionID, voterHash); err != nil {
		return err
	} else if voted {
		metrics.VotesTotal.WithLabelValues("duplicate").Inc()
		return ErrAlreadyVoted
	}

	// 投票写入与计数自增同事务；并发竞态仍由唯一约束兜底
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		vote := &model.Vote{
			SubmissionID: submissionID,
			VoterHash:    voterHash,
		}
		if err := txRepo.Vote.Create(ctx, vote); err != nil {
			return err
		}
		return txRepo.Submission.IncrementVoteCount(ctx, submissionID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.VotesTotal.WithLabelValues("duplicate").Inc()
			return ErrAlreadyVoted
		}
		s.logger.Error("写入投票失败", zap.String("submission_id", submissionID), zap.Error(err))
		return err
	}

	metrics.VotesTotal.WithLabelValues("accepted").Inc()
	return nil
}

// ── 内部辅助方法 ──

// hashVoter 明文 IP 不落库，仅存加盐哈希
func (s *voteService) hashVoter(clientIP string) string {
	sum := sha256.Sum256([]byte(clientIP + s.cfg.IPSalt))
	return hex.EncodeToString(sum[:])
}
