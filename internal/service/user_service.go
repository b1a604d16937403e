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

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrApprovalNotAllowed = errors.New("无权审批该用户")
	ErrAlreadyReviewed    = errors.New("该用户已完成审批")
)

// UserService 用户业务接口
type UserService interface {
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, role, status string, page, pageSize int) ([]dto.UserResponse, int64, error)
	// Approve 审批用户：super_admin 可审批任何人；
	// teacher 只能审批本校的学生（服务端复核，不信任前端角色）
	Approve(ctx context.Context, id string, approve bool, callerID, callerRole string) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, role, status string, page, pageSize int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.repo.User.List(ctx, role, status, (page-1)*pageSize, pageSize)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}
	return result, total, nil
}

// ────────────────────── Approve ──────────────────────

func (s *userService) Approve(ctx context.Context, id string, approve bool, callerID, callerRole string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if user.Status != model.ApprovalPending {
		return nil, ErrAlreadyReviewed
	}

	// teacher 只能审批学生，且必须同校
	if callerRole == model.RoleTeacher {
		if user.Role != model.RoleStudent {
			return nil, ErrApprovalNotAllowed
		}
		caller, err := s.repo.User.GetByID(ctx, callerID)
		if err != nil {
			s.logger.Error("查询审批人失败", zap.String("id", callerID), zap.Error(err))
			return nil, err
		}
		if caller.SchoolID == nil || user.SchoolID == nil || *caller.SchoolID != *user.SchoolID {
			return nil, ErrApprovalNotAllowed
		}
	}

	if approve {
		user.Status = model.ApprovalApproved
	} else {
		user.Status = model.ApprovalRejected
	}
	user.UpdatedBy = &callerID

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("审批用户失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户审批完成",
		zap.String("user_id", id),
		zap.String("status", user.Status),
		zap.String("reviewer", callerID),
	)

	return toUserResponse(user), nil
}
