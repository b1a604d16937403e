package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/config"
	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
)

// ── 赛事模块业务错误 ──

var (
	ErrEventNotFound        = errors.New("赛事不存在")
	ErrInvalidDateRange     = errors.New("开始日期不能晚于结束日期")
	ErrInvalidTransition    = errors.New("非法的状态流转")
	ErrStatusConflict       = errors.New("赛事状态已被其他操作修改，请刷新后重试")
	ErrNotAJudge            = errors.New("该用户不是评委角色")
	ErrJudgeAlreadyAssigned = errors.New("该评委已分配到此赛事")
	ErrJudgeNotAssigned     = errors.New("该评委未分配到此赛事")
)

const dateLayout = "2006-01-02"

// EventService 赛事业务接口
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest, callerID string) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string, page, pageSize int) ([]dto.EventResponse, int64, error)

	// AdvanceStatus 生命周期单步前进：target 必须恰为当前状态的下一个
	AdvanceStatus(ctx context.Context, id, target, callerID string) (*dto.EventResponse, error)
	// OverrideStatus 管理员强制设置任意状态（可回退），原因入日志留痕
	OverrideStatus(ctx context.Context, id, target, reason, callerID string) (*dto.EventResponse, error)

	AssignJudge(ctx context.Context, eventID, judgeID, callerID string) error
	RemoveJudge(ctx context.Context, eventID, judgeID string) error
	ListJudges(ctx context.Context, eventID string) ([]dto.EventJudgeResponse, error)
}

type eventService struct {
	cfg    *config.ResultsConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(cfg *config.ResultsConfig, repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, callerID string) (*dto.EventResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}

	event := &model.Event{
		Title:         req.Title,
		Description:   req.Description,
		StartDate:     startDate,
		EndDate:       endDate,
		ResultsStatus: model.ResultsNotStarted,
		GoldCount:     1,
		SilverCount:   2,
		BronzeCount:   3,
	}
	if req.ScoringDeadline != nil && *req.ScoringDeadline != "" {
		deadline, err := time.Parse(dateLayout, *req.ScoringDeadline)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		event.ScoringDeadline = &deadline
	}
	if req.GoldCount != nil {
		event.GoldCount = *req.GoldCount
	}
	if req.SilverCount != nil {
		event.SilverCount = *req.SilverCount
	}
	if req.BronzeCount != nil {
		event.BronzeCount = *req.BronzeCount
	}
	event.CreatedBy = &callerID

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建赛事失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("赛事已创建",
		zap.String("event_id", event.EventID),
		zap.String("title", event.Title))
	return s.toEventResponse(event), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event), nil
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest, callerID string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		event.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		event.EndDate = endDate
	}
	if event.StartDate.After(event.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if req.ScoringDeadline != nil {
		if *req.ScoringDeadline == "" {
			event.ScoringDeadline = nil
		} else {
			deadline, err := time.Parse(dateLayout, *req.ScoringDeadline)
			if err != nil {
				return nil, ErrInvalidDateRange
			}
			event.ScoringDeadline = &deadline
		}
	}
	if req.GoldCount != nil {
		event.GoldCount = *req.GoldCount
	}
	if req.SilverCount != nil {
		event.SilverCount = *req.SilverCount
	}
	if req.BronzeCount != nil {
		event.BronzeCount = *req.BronzeCount
	}
	event.UpdatedBy = &callerID

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("更新赛事失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event), nil
}

// ────────────────────── Delete ──────────────────────

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Event.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("删除赛事失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *eventService) List(ctx context.Context, status string, page, pageSize int) ([]dto.EventResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	events, total, err := s.repo.Event.List(ctx, status, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("列出赛事失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *s.toEventResponse(&events[i]))
	}
	return result, total, nil
}

// ────────────────────── AdvanceStatus ──────────────────────

func (s *eventService) AdvanceStatus(ctx context.Context, id, target, callerID string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	next, ok := nextStatus(event.ResultsStatus)
	if !ok || next != target {
		return nil, ErrInvalidTransition
	}

	// 条件更新防并发双写：前置状态不匹配则零行受影响
	affected, err := s.repo.Event.UpdateStatus(ctx, id, event.ResultsStatus, target)
	if err != nil {
		s.logger.Error("状态流转失败", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStatusConflict
	}

	s.logger.Info("赛事状态已流转",
		zap.String("event_id", id),
		zap.String("from", event.ResultsStatus),
		zap.String("to", target),
		zap.String("operator", callerID))

	event.ResultsStatus = target
	return s.toEventResponse(event), nil
}

// ────────────────────── OverrideStatus ──────────────────────

func (s *eventService) OverrideStatus(ctx context.Context, id, target, reason, callerID string) (*dto.EventResponse, error) {
	if !validStatus(target) {
		return nil, ErrInvalidTransition
	}

	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	affected, err := s.repo.Event.UpdateStatus(ctx, id, event.ResultsStatus, target)
	if err != nil {
		s.logger.Error("强制设置状态失败", zap.String("event_id", id), zap.Error(err))
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStatusConflict
	}

	// 强制覆盖绕过状态机，原因必须留痕
	s.logger.Warn("赛事状态被强制覆盖",
		zap.String("event_id", id),
		zap.String("from", event.ResultsStatus),
		zap.String("to", target),
		zap.String("reason", reason),
		zap.String("operator", callerID))

	event.ResultsStatus = target
	return s.toEventResponse(event), nil
}

// ────────────────────── AssignJudge ──────────────────────

func (s *eventService) AssignJudge(ctx context.Context, eventID, judgeID, callerID string) error {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	judge, err := s.repo.User.GetByID(ctx, judgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if judge.Role != model.RoleJudge {
		return ErrNotAJudge
	}

	assigned, err := s.repo.EventJudge.IsAssigned(ctx, eventID, judgeID)
	if err != nil {
		return err
	}
	if assigned {
		return ErrJudgeAlreadyAssigned
	}

	ej := &model.EventJudge{
		EventID:   eventID,
		JudgeID:   judgeID,
		CreatedBy: &callerID,
	}
	if err := s.repo.EventJudge.Assign(ctx, ej); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrJudgeAlreadyAssigned
		}
		s.logger.Error("分配评委失败",
			zap.String("event_id", eventID),
			zap.String("judge_id", judgeID),
			zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── RemoveJudge ──────────────────────

func (s *eventService) RemoveJudge(ctx context.Context, eventID, judgeID string) error {
	assigned, err := s.repo.EventJudge.IsAssigned(ctx, eventID, judgeID)
	if err != nil {
		return err
	}
	if !assigned {
		return ErrJudgeNotAssigned
	}
	return s.repo.EventJudge.Remove(ctx, eventID, judgeID)
}

// ────────────────────── ListJudges ──────────────────────

func (s *eventService) ListJudges(ctx context.Context, eventID string) ([]dto.EventJudgeResponse, error) {
	if _, err := s.repo.Event.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	judges, err := s.repo.EventJudge.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Submission.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EventJudgeResponse, 0, len(judges))
	for i := range judges {
		scored, err := s.repo.Score.CountDistinctSubmissions(ctx, eventID, judges[i].JudgeID)
		if err != nil {
			return nil, err
		}
		// 作品撤回后历史评分可能多于当前作品数，进度封顶
		if scored > total {
			scored = total
		}
		name := ""
		if judges[i].Judge != nil {
			name = judges[i].Judge.Name
		}
		result = append(result, dto.EventJudgeResponse{
			JudgeID:   judges[i].JudgeID,
			JudgeName: name,
			Scored:    int(scored),
			Total:     int(total),
		})
	}
	return result, nil
}

// ── 内部辅助方法 ──

// nextStatus 返回当前状态的下一个生命周期状态
func nextStatus(current string) (string, bool) {
	for i, st := range model.ResultsStatusOrder {
		if st == current && i+1 < len(model.ResultsStatusOrder) {
			return model.ResultsStatusOrder[i+1], true
		}
	}
	return "", false
}

func validStatus(status string) bool {
	for _, st := range model.ResultsStatusOrder {
		if st == status {
			return true
		}
	}
	return false
}

func (s *eventService) toEventResponse(event *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:            event.EventID,
		Title:         event.Title,
		Description:   event.Description,
		StartDate:     event.StartDate.Format(dateLayout),
		EndDate:       event.EndDate.Format(dateLayout),
		ResultsStatus: event.ResultsStatus,
		GoldCount:     event.GoldCount,
		SilverCount:   event.SilverCount,
		BronzeCount:   event.BronzeCount,
	}
	if event.ScoringDeadline != nil {
		resp.ScoringDeadline = event.ScoringDeadline.Format(dateLayout)
	}

	// 逾期仅用于展示，不触发任何自动流转
	resp.Overdue, resp.OverdueDays = s.overdue(event, time.Now())

	for i := range event.Criteria {
		resp.Criteria = append(resp.Criteria, dto.CriterionResponse{
			ID:           event.Criteria[i].CriterionID,
			EventID:      event.Criteria[i].EventID,
			Label:        event.Criteria[i].Label,
			Weight:       event.Criteria[i].Weight,
			DisplayOrder: event.Criteria[i].DisplayOrder,
		})
	}
	return resp
}

// overdue 判断结果发布是否逾期：
// 基准日（scoring_deadline，缺省时取 end_date）+ 阈值天数已过且尚未发布即视为逾期
func (s *eventService) overdue(event *model.Event, now time.Time) (bool, int) {
	if event.ResultsStatus == model.ResultsPublished {
		return false, 0
	}
	baseline := event.EndDate
	if event.ScoringDeadline != nil {
		baseline = *event.ScoringDeadline
	}
	threshold := baseline.AddDate(0, 0, s.cfg.OverdueThresholdDays)
	if now.Before(threshold) {
		return false, 0
	}
	return true, int(now.Sub(threshold).Hours() / 24)
}
