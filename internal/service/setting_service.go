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

// ── 站点配置模块业务错误 ──

var (
	ErrSettingNotFound = errors.New("配置项不存在")
)

// SettingService 站点内容配置业务接口
//
// 键值对 CMS：首页文案、公告、联系方式等。
// 不做进程内缓存，需要时按请求取一次快照。
type SettingService interface {
	Upsert(ctx context.Context, req *dto.UpsertSettingRequest, callerID string) (*dto.SettingResponse, error)
	GetByKey(ctx context.Context, key string) (*dto.SettingResponse, error)
	List(ctx context.Context) ([]dto.SettingResponse, error)
	Delete(ctx context.Context, key string) error
	// Snapshot 返回全量配置的 key→value 快照
	Snapshot(ctx context.Context) (map[string]string, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

// ────────────────────── Upsert ──────────────────────

func (s *settingService) Upsert(ctx context.Context, req *dto.UpsertSettingRequest, callerID string) (*dto.SettingResponse, error) {
	setting := &model.SiteSetting{
		Key:       req.Key,
		Value:     req.Value,
		UpdatedBy: &callerID,
	}
	if err := s.repo.SiteSetting.Upsert(ctx, setting); err != nil {
		s.logger.Error("写入站点配置失败", zap.String("key", req.Key), zap.Error(err))
		return nil, err
	}

	s.logger.Info("站点配置已更新",
		zap.String("key", req.Key),
		zap.String("operator", callerID))
	return toSettingResponse(setting), nil
}

// ────────────────────── GetByKey ──────────────────────

func (s *settingService) GetByKey(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := s.repo.SiteSetting.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// ────────────────────── List ──────────────────────

func (s *settingService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := s.repo.SiteSetting.List(ctx)
	if err != nil {
		s.logger.Error("列出站点配置失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		result = append(result, *toSettingResponse(&settings[i]))
	}
	return result, nil
}

// ────────────────────── Delete ──────────────────────

func (s *settingService) Delete(ctx context.Context, key string) error {
	if _, err := s.repo.SiteSetting.GetByKey(ctx, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return err
	}
	return s.repo.SiteSetting.Delete(ctx, key)
}

// ────────────────────── Snapshot ──────────────────────

func (s *settingService) Snapshot(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.SiteSetting.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]string, len(settings))
	for i := range settings {
		snapshot[settings[i].Key] = settings[i].Value
	}
	return snapshot, nil
}

// ── 内部辅助方法 ──

func toSettingResponse(setting *model.SiteSetting) *dto.SettingResponse {
	return &dto.SettingResponse{
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt.Format(time.RFC3339),
	}
}
