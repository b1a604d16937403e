package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// ── 测试辅助 ──

func setupTestCriterionService() (CriterionService, *testMocks) {
	mocks := newTestMocks()
	svc := NewCriterionService(mocks.repo(), zap.NewNop())
	return svc, mocks
}

func seedEditableEvent(mocks *testMocks) {
	mocks.events.events["event-1"] = &model.Event{
		EventID:       "event-1",
		Title:         "校园摄影展",
		StartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		ResultsStatus: model.ResultsNotStarted,
	}
}

// ── Create 测试 ──

func TestCriterionService_Create_Success(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)

	resp, err := svc.Create(context.Background(), "event-1", &dto.CreateCriterionRequest{
		Label:        "构图与光影",
		Weight:       60,
		DisplayOrder: 1,
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Label != "构图与光影" || resp.Weight != 60 {
		t.Errorf("期望 构图与光影/60，实际=%s/%d", resp.Label, resp.Weight)
	}
	if resp.EventID != "event-1" {
		t.Errorf("期望挂在 event-1 下，实际=%s", resp.EventID)
	}
}

func TestCriterionService_Create_EditableWhileScoringOpen(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)
	mocks.events.events["event-1"].ResultsStatus = model.ResultsScoringOpen

	if _, err := svc.Create(context.Background(), "event-1", &dto.CreateCriterionRequest{
		Label: "临场表现", Weight: 40,
	}, "admin-1"); err != nil {
		t.Errorf("评分开放中规则仍可编辑: %v", err)
	}
}

func TestCriterionService_Create_LockedAfterScoring(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)

	for _, status := range []string{model.ResultsScoringLocked, model.ResultsReview, model.ResultsPublished} {
		mocks.events.events["event-1"].ResultsStatus = status
		_, err := svc.Create(context.Background(), "event-1", &dto.CreateCriterionRequest{
			Label: "新增项", Weight: 10,
		}, "admin-1")
		if !errors.Is(err, ErrRubricLocked) {
			t.Errorf("状态=%s 时应返回 ErrRubricLocked，实际: %v", status, err)
		}
	}
}

// ── Update / Delete 测试 ──

func TestCriterionService_Update_Success(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)
	mocks.criteria.criteria["crit-1"] = &model.EvaluationCriterion{
		CriterionID: "crit-1", EventID: "event-1", Label: "创意性", Weight: 50,
	}

	newWeight := 70
	resp, err := svc.Update(context.Background(), "crit-1", &dto.UpdateCriterionRequest{
		Weight: &newWeight,
	}, "admin-1")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Weight != 70 {
		t.Errorf("期望权重=70，实际=%d", resp.Weight)
	}
	if resp.Label != "创意性" {
		t.Errorf("未修改的字段应保留，实际=%s", resp.Label)
	}
}

func TestCriterionService_Update_LockedRubric(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)
	mocks.events.events["event-1"].ResultsStatus = model.ResultsScoringLocked
	mocks.criteria.criteria["crit-1"] = &model.EvaluationCriterion{
		CriterionID: "crit-1", EventID: "event-1", Label: "创意性", Weight: 50,
	}

	newWeight := 70
	_, err := svc.Update(context.Background(), "crit-1", &dto.UpdateCriterionRequest{Weight: &newWeight}, "admin-1")
	if !errors.Is(err, ErrRubricLocked) {
		t.Errorf("锁定后修改应返回 ErrRubricLocked，实际: %v", err)
	}
}

func TestCriterionService_Delete(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)
	mocks.criteria.criteria["crit-1"] = &model.EvaluationCriterion{
		CriterionID: "crit-1", EventID: "event-1", Label: "创意性", Weight: 50,
	}

	if err := svc.Delete(context.Background(), "crit-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), "crit-1"); !errors.Is(err, ErrCriterionNotFound) {
		t.Errorf("重复删除应返回 ErrCriterionNotFound，实际: %v", err)
	}
}

// ── ListByEvent 测试 ──

func TestCriterionService_ListByEvent_Ordered(t *testing.T) {
	svc, mocks := setupTestCriterionService()
	seedEditableEvent(mocks)
	mocks.criteria.criteria["crit-b"] = &model.EvaluationCriterion{
		CriterionID: "crit-b", EventID: "event-1", Label: "完成度", Weight: 40, DisplayOrder: 2,
	}
	mocks.criteria.criteria["crit-a"] = &model.EvaluationCriterion{
		CriterionID: "crit-a", EventID: "event-1", Label: "创意性", Weight: 60, DisplayOrder: 1,
	}

	criteria, err := svc.ListByEvent(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("ListByEvent 应成功: %v", err)
	}
	if len(criteria) != 2 {
		t.Fatalf("期望 2 个评分项，实际=%d", len(criteria))
	}
	if criteria[0].Label != "创意性" || criteria[1].Label != "完成度" {
		t.Errorf("应按展示顺序排列，实际=%s,%s", criteria[0].Label, criteria[1].Label)
	}
}
