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

// ── 学校模块业务错误 ──

var (
	ErrSchoolAlreadyReviewed = errors.New("该学校已完成审批")
)

// SchoolService 学校业务接口
type SchoolService interface {
	Register(ctx context.Context, req *dto.RegisterSchoolRequest) (*dto.SchoolResponse, error)
	List(ctx context.Context, status string) ([]dto.SchoolResponse, error)
	Approve(ctx context.Context, id string, approve bool, callerID string) (*dto.SchoolResponse, error)
}

type schoolService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolService 创建 SchoolService 实例
func NewSchoolService(repo *repository.Repository, logger *zap.Logger) SchoolService {
	return &schoolService{repo: repo, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *schoolService) Register(ctx context.Context, req *dto.RegisterSchoolRequest) (*dto.SchoolResponse, error) {
	school := &model.School{
		Name:   req.Name,
		City:   req.City,
		Status: model.ApprovalPending,
	}
	if err := s.repo.School.Create(ctx, school); err != nil {
		s.logger.Error("创建学校失败", zap.Error(err))
		return nil, err
	}
	return toSchoolResponse(school), nil
}

// ────────────────────── List ──────────────────────

func (s *schoolService) List(ctx context.Context, status string) ([]dto.SchoolResponse, error) {
	schools, err := s.repo.School.List(ctx, status)
	if err != nil {
		s.logger.Error("列出学校失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolResponse, 0, len(schools))
	for i := range schools {
		result = append(result, *toSchoolResponse(&schools[i]))
	}
	return result, nil
}

// ────────────────────── Approve ──────────────────────

func (s *schoolService) Approve(ctx context.Context, id string, approve bool, callerID string) (*dto.SchoolResponse, error) {
	school, err := s.repo.School.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		s.logger.Error("查询学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if school.Status != model.ApprovalPending {
		return nil, ErrSchoolAlreadyReviewed
	}

	if approve {
		school.Status = model.ApprovalApproved
	} else {
		school.Status = model.ApprovalRejected
	}
	school.UpdatedBy = &callerID

	if err := s.repo.School.Update(ctx, school); err != nil {
		s.logger.Error("审批学校失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSchoolResponse(school), nil
}

// ── 内部辅助方法 ──

func toSchoolResponse(school *model.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		ID:     school.SchoolID,
		Name:   school.Name,
		City:   school.City,
		Status: school.Status,
	}
}
