package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// SchoolRepository 学校数据访问接口
type SchoolRepository interface {
	Create(ctx context.Context, school *model.School) error
	GetByID(ctx context.Context, id string) (*model.School, error)
	Update(ctx context.Context, school *model.School) error
	List(ctx context.Context, status string) ([]model.School, error)
}

type schoolRepo struct {
	db *gorm.DB
}

// NewSchoolRepo 创建 SchoolRepository 实例
func NewSchoolRepo(db *gorm.DB) SchoolRepository {
	return &schoolRepo{db: db}
}

func (r *schoolRepo) Create(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

func (r *schoolRepo) GetByID(ctx context.Context, id string) (*model.School, error) {
	var school model.School
	err := r.db.WithContext(ctx).Where("school_id = ?", id).First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepo) Update(ctx context.Context, school *model.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

func (r *schoolRepo) List(ctx context.Context, status string) ([]model.School, error) {
	var schools []model.School
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("name ASC").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}
