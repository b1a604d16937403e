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
)

// ── 徽章模块业务错误 ──

var (
	ErrBadgeNotFound = errors.New("凭证不存在或结果尚未发布")
)

// BadgeService 徽章公开校验业务接口
//
// 对外只按 credential_id 查询，内部 ID 永不暴露；
// 徽章在结果计算后即存在，但公开可见性额外要求赛事已发布。
type BadgeService interface {
	Verify(ctx context.Context, credentialID string) (*dto.BadgeResponse, error)
}

type badgeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBadgeService 创建 BadgeService 实例
func NewBadgeService(repo *repository.Repository, logger *zap.Logger) BadgeService {
	return &badgeService{repo: repo, logger: logger}
}

// ────────────────────── Verify ──────────────────────

func (s *badgeService) Verify(ctx context.Context, credentialID string) (*dto.BadgeResponse, error) {
	badge, err := s.repo.Badge.GetByCredentialID(ctx, credentialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeNotFound
		}
		s.logger.Error("查询凭证失败", zap.String("credential_id", credentialID), zap.Error(err))
		return nil, err
	}

	event, err := s.repo.Event.GetByID(ctx, badge.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, err
	}
	// 未发布的结果对外不可见，存在性也不暴露
	if event.ResultsStatus != model.ResultsPublished {
		return nil, ErrBadgeNotFound
	}

	return &dto.BadgeResponse{
		CredentialID:  badge.CredentialID,
		Tier:          badge.Tier,
		Rank:          badge.Rank,
		WeightedScore: badge.WeightedScore,
		StudentName:   badge.StudentName,
		SchoolName:    badge.SchoolName,
		EventTitle:    badge.EventTitle,
		IssuedAt:      badge.IssuedAt.Format(time.RFC3339),
	}, nil
}
