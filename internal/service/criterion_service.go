package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
)

// ── 评分项模块业务错误 ──

var (
	ErrCriterionNotFound = errors.New("评分项不存在")
	ErrRubricLocked      = errors.New("评分已锁定，评分项不可修改")
)

// CriterionService 评分项业务接口
//
// 评分规则只在 not_started 与 scoring_open 两个阶段可编辑；
// 一旦进入 scoring_locked 及之后，规则冻结以保证结果可复算。
type CriterionService interface {
	Create(ctx context.Context, eventID string, req *dto.CreateCriterionRequest, callerID string) (*dto.CriterionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCriterionRequest, callerID string) (*dto.CriterionResponse, error)
	Delete(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]dto.CriterionResponse, error)
}

type criterionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCriterionService 创建 CriterionService 实例
func NewCriterionService(repo *repository.Repository, logger *zap.Logger) CriterionService {
	return &criterionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *criterionService) Create(ctx context.Context, eventID string, req *dto.CreateCriterionRequest, callerID string) (*dto.CriterionResponse, error) {
	if err := s.ensureEditable(ctx, eventID); err != nil {
		return nil, err
	}

	criterion := &model.EvaluationCriterion{
		EventID:      eventID,
		Label:        req.Label,
		Weight:       req.Weight,
		DisplayOrder: req.DisplayOrder,
	}
	criterion.CreatedBy = &callerID

	if err := s.repo.Criterion.Create(ctx, criterion); err != nil {
		s.logger.Error("创建评分项失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	s.warnIfWeightDrift(ctx, eventID)
	return toCriterionResponse(criterion), nil
}

// ────────────────────── Update ──────────────────────

func (s *criterionService) Update(ctx context.Context, id string, req *dto.UpdateCriterionRequest, callerID string) (*dto.CriterionResponse, error) {
	criterion, err := s.repo.Criterion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCriterionNotFound
		}
		return nil, err
	}

	if err := s.ensureEditable(ctx, criterion.EventID); err != nil {
		return nil, err
	}

	if req.Label != nil {
		criterion.Label = *req.Label
	}
	if req.Weight != nil {
		criterion.Weight = *req.Weight
	}
	if req.DisplayOrder != nil {
		criterion.DisplayOrder = *req.DisplayOrder
	}
	criterion.UpdatedBy = &callerID

	if err := s.repo.Criterion.Update(ctx, criterion); err != nil {
		s.logger.Error("更新评分项失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.warnIfWeightDrift(ctx, criterion.EventID)
	return toCriterionResponse(criterion), nil
}

// ────────────────────── Delete ──────────────────────

func (s *criterionService) Delete(ctx context.Context, id string) error {
	criterion, err := s.repo.Criterion.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCriterionNotFound
		}
		return err
	}

	if err := s.ensureEditable(ctx, criterion.EventID); err != nil {
		return err
	}

	return s.repo.Criterion.Delete(ctx, id)
}

// ────────────────────── ListByEvent ──────────────────────

func (s *criterionService) ListByEvent(ctx context.Context, eventID string) ([]dto.CriterionResponse, error) {
	criteria, err := s.repo.Criterion.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出评分项失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CriterionResponse, 0, len(criteria))
	for i := range criteria {
		result = append(result, *toCriterionResponse(&criteria[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *criterionService) ensureEditable(ctx context.Context, eventID string) error {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	switch event.ResultsStatus {
	case model.ResultsNotStarted, model.ResultsScoringOpen:
		return nil
	default:
		return ErrRubricLocked
	}
}

// warnIfWeightDrift 权重和偏离 100 时记一条告警；
// 不阻断写入，聚合阶段按实际权重和归一化
func (s *criterionService) warnIfWeightDrift(ctx context.Context, eventID string) {
	criteria, err := s.repo.Criterion.ListByEvent(ctx, eventID)
	if err != nil {
		return
	}
	sum := 0
	for i := range criteria {
		sum += criteria[i].Weight
	}
	if sum != 100 {
		s.logger.Warn("评分项权重和偏离 100",
			zap.String("event_id", eventID),
			zap.Int("weight_sum", sum))
	}
}

func toCriterionResponse(criterion *model.EvaluationCriterion) *dto.CriterionResponse {
	return &dto.CriterionResponse{
		ID:           criterion.CriterionID,
		EventID:      criterion.EventID,
		Label:        criterion.Label,
		Weight:       criterion.Weight,
		DisplayOrder: criterion.DisplayOrder,
	}
}
