package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jithuth/competeskool-final-sub001/config"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// ── 测试辅助 ──

func setupTestVoteService() (VoteService, *testMocks) {
	mocks := newTestMocks()
	cfg := &config.VoteConfig{IPSalt: "test-salt"}
	svc := NewVoteService(cfg, mocks.repo(), zap.NewNop())
	return svc, mocks
}

func seedVotableSubmission(mocks *testMocks) {
	event := seedLockedEvent(mocks)
	event.ResultsStatus = model.ResultsScoringOpen
	seedSubmission(mocks, "sub-1", "张三", time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC))
}

// ── Vote 测试 ──

func TestVoteService_Vote_Success(t *testing.T) {
	svc, mocks := setupTestVoteService()
	seedVotableSubmission(mocks)

	if err := svc.Vote(context.Background(), "sub-1", "203.0.113.7"); err != nil {
		t.Fatalf("Vote 应成功: %v", err)
	}
	if len(mocks.votes.votes) != 1 {
		t.Errorf("期望落库 1 票，实际=%d", len(mocks.votes.votes))
	}
	if got := mocks.submissions.submissions["sub-1"].VoteCount; got != 1 {
		t.Errorf("票数应同事务自增，期望=1，实际=%d", got)
	}
}

func TestVoteService_Vote_Duplicate(t *testing.T) {
	svc, mocks := setupTestVoteService()
	seedVotableSubmission(mocks)

	if err := svc.Vote(context.Background(), "sub-1", "203.0.113.7"); err != nil {
		t.Fatalf("首次投票应成功: %v", err)
	}
	err := svc.Vote(context.Background(), "sub-1", "203.0.113.7")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("同一 IP 重复投票应返回 ErrAlreadyVoted，实际: %v", err)
	}
	if got := mocks.submissions.submissions["sub-1"].VoteCount; got != 1 {
		t.Errorf("重复投票不应再自增票数，期望=1，实际=%d", got)
	}
}

func TestVoteService_Vote_DuplicateRaceFallsBackToConstraint(t *testing.T) {
	svc, mocks := setupTestVoteService()
	seedVotableSubmission(mocks)

	if err := svc.Vote(context.Background(), "sub-1", "203.0.113.7"); err != nil {
		t.Fatalf("首次投票应成功: %v", err)
	}

	// 快路径查询落后于并发写入时，唯一约束仍应兜住重复票
	mocks.votes.existsMiss = true
	err := svc.Vote(context.Background(), "sub-1", "203.0.113.7")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("唯一约束冲突应映射为 ErrAlreadyVoted，实际: %v", err)
	}
	if got := mocks.submissions.submissions["sub-1"].VoteCount; got != 1 {
		t.Errorf("竞态重复票不应自增票数，期望=1，实际=%d", got)
	}
}

func TestVoteService_Vote_DifferentIPsCounted(t *testing.T) {
	svc, mocks := setupTestVoteService()
	seedVotableSubmission(mocks)

	if err := svc.Vote(context.Background(), "sub-1", "203.0.113.7"); err != nil {
		t.Fatalf("投票应成功: %v", err)
	}
	if err := svc.Vote(context.Background(), "sub-1", "203.0.113.8"); err != nil {
		t.Fatalf("不同 IP 投票应成功: %v", err)
	}
	if got := mocks.submissions.submissions["sub-1"].VoteCount; got != 2 {
		t.Errorf("期望票数=2，实际=%d", got)
	}
}

func TestVoteService_Vote_Closed(t *testing.T) {
	svc, mocks := setupTestVoteService()
	seedVotableSubmission(mocks)
	mocks.events.events["event-1"].ResultsStatus = model.ResultsScoringLocked

	err := svc.Vote(context.Background(), "sub-1", "203.0.113.7")
	if !errors.Is(err, ErrVotingClosed) {
		t.Errorf("评分关闭后投票应返回 ErrVotingClosed，实际: %v", err)
	}
	if len(mocks.votes.votes) != 0 {
		t.Error("关闭期间不应落库任何投票")
	}
}

func TestVoteService_Vote_WithdrawnSubmissionHidden(t *testing.T) {
	svc, mocks := setupTestVoteService()
	seedVotableSubmission(mocks)
	mocks.submissions.submissions["sub-1"].Status = model.SubmissionWithdrawn

	err := svc.Vote(context.Background(), "sub-1", "203.0.113.7")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("已撤回作品对外表现为不存在，期望 ErrSubmissionNotFound，实际: %v", err)
	}
}

func TestVoteService_Vote_NotFound(t *testing.T) {
	svc, _ := setupTestVoteService()
	err := svc.Vote(context.Background(), "missing", "203.0.113.7")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("期望 ErrSubmissionNotFound，实际: %v", err)
	}
}

// ── voter 哈希测试 ──

func TestVoteService_HashVoter(t *testing.T) {
	mocks := newTestMocks()
	svc := &voteService{
		cfg:    &config.VoteConfig{IPSalt: "test-salt"},
		repo:   mocks.repo(),
		logger: zap.NewNop(),
	}

	h1 := svc.hashVoter("203.0.113.7")
	h2 := svc.hashVoter("203.0.113.7")
	h3 := svc.hashVoter("203.0.113.8")

	if h1 != h2 {
		t.Error("同一 IP 的哈希应稳定")
	}
	if h1 == h3 {
		t.Error("不同 IP 的哈希不应碰撞")
	}
	if len(h1) != 64 {
		t.Errorf("sha256 十六进制长度应为 64，实际=%d", len(h1))
	}
	if h1 == "203.0.113.7" {
		t.Error("明文 IP 不应直接作为身份入库")
	}
}
