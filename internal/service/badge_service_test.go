package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// ── 测试辅助 ──

func setupTestBadgeService() (BadgeService, *testMocks) {
	mocks := newTestMocks()
	svc := NewBadgeService(mocks.repo(), zap.NewNop())
	return svc, mocks
}

func seedBadge(mocks *testMocks, eventStatus string) {
	mocks.events.events["event-1"] = &model.Event{
		EventID: "event-1", Title: "校园科创大赛", ResultsStatus: eventStatus,
	}
	mocks.badges.badges["sub-1"] = &model.Badge{
		BadgeID:       "badge-1",
		CredentialID:  "cred-abc",
		SubmissionID:  "sub-1",
		EventID:       "event-1",
		Tier:          model.TierGold,
		Rank:          1,
		WeightedScore: 92.5,
		StudentName:   "张三",
		SchoolName:    "第一中学",
		EventTitle:    "校园科创大赛",
		IssuedAt:      time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC),
	}
}

// ── Verify 测试 ──

func TestBadgeService_Verify_Published(t *testing.T) {
	svc, mocks := setupTestBadgeService()
	seedBadge(mocks, model.ResultsPublished)

	resp, err := svc.Verify(context.Background(), "cred-abc")
	if err != nil {
		t.Fatalf("Verify 应成功: %v", err)
	}
	if resp.Tier != model.TierGold || resp.Rank != 1 {
		t.Errorf("期望金档第一名，实际=%s/%d", resp.Tier, resp.Rank)
	}
	if resp.StudentName != "张三" || resp.EventTitle != "校园科创大赛" {
		t.Errorf("凭证应返回颁发时的快照，实际=%s/%s", resp.StudentName, resp.EventTitle)
	}
	if resp.IssuedAt != "2026-10-20T09:00:00Z" {
		t.Errorf("期望 RFC3339 颁发时间，实际=%s", resp.IssuedAt)
	}
}

func TestBadgeService_Verify_UnpublishedHidden(t *testing.T) {
	svc, mocks := setupTestBadgeService()
	// 徽章已铸出但赛事未发布：存在性不对外暴露
	seedBadge(mocks, model.ResultsReview)

	_, err := svc.Verify(context.Background(), "cred-abc")
	if !errors.Is(err, ErrBadgeNotFound) {
		t.Errorf("未发布赛事的凭证应返回 ErrBadgeNotFound，实际: %v", err)
	}
}

func TestBadgeService_Verify_UnknownCredential(t *testing.T) {
	svc, _ := setupTestBadgeService()
	_, err := svc.Verify(context.Background(), "no-such-credential")
	if !errors.Is(err, ErrBadgeNotFound) {
		t.Errorf("期望 ErrBadgeNotFound，实际: %v", err)
	}
}
