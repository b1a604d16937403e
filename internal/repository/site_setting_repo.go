package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// SiteSettingRepository 站点配置数据访问接口
type SiteSettingRepository interface {
	Upsert(ctx context.Context, setting *model.SiteSetting) error
	GetByKey(ctx context.Context, key string) (*model.SiteSetting, error)
	List(ctx context.Context) ([]model.SiteSetting, error)
	Delete(ctx context.Context, key string) error
}

type siteSettingRepo struct {
	db *gorm.DB
}

// NewSiteSettingRepo 创建 SiteSettingRepository 实例
func NewSiteSettingRepo(db *gorm.DB) SiteSettingRepository {
	return &siteSettingRepo{db: db}
}

func (r *siteSettingRepo) Upsert(ctx context.Context, setting *model.SiteSetting) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      setting.Value,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
				"updated_by": setting.UpdatedBy,
			}),
		}).
		Create(setting).Error
}

func (r *siteSettingRepo) GetByKey(ctx context.Context, key string) (*model.SiteSetting, error) {
	var setting model.SiteSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *siteSettingRepo) List(ctx context.Context) ([]model.SiteSetting, error) {
	var settings []model.SiteSetting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *siteSettingRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.SiteSetting{}).Error
}
