package repository

import (
	"errors"
	"strings"

	"github.com/digistock/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlatformRepository 平台数据访问接口
type PlatformRepository interface {
	GetByID(id uint) (*models.Platform, error)
	GetByIDForUpdate(id uint) (*models.Platform, error)
	Create(platform *models.Platform) error
	Update(platform *models.Platform) error
	Delete(id uint) error
	List(filter PlatformListFilter) ([]models.Platform, int64, error)
	ListLowBalance() ([]models.Platform, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PlatformRepository
}

// GormPlatformRepository GORM 平台仓储实现
type GormPlatformRepository struct {
	db *gorm.DB
}

// NewPlatformRepository 创建平台仓储
func NewPlatformRepository(db *gorm.DB) *GormPlatformRepository {
	return &GormPlatformRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPlatformRepository) WithTx(tx *gorm.DB) PlatformRepository {
	if tx == nil {
		return r
	}
	return &GormPlatformRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPlatformRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取平台
func (r *GormPlatformRepository) GetByID(id uint) (*models.Platform, error) {
	if id == 0 {
		return nil, nil
	}
	var platform models.Platform
	if err := r.db.First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &platform, nil
}

// GetByIDForUpdate 按ID加锁获取平台
func (r *GormPlatformRepository) GetByIDForUpdate(id uint) (*models.Platform, error) {
	if id == 0 {
		return nil, nil
	}
	var platform models.Platform
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &platform, nil
}

// Create 创建平台
func (r *GormPlatformRepository) Create(platform *models.Platform) error {
	return r.db.Create(platform).Error
}

// Update 更新平台
func (r *GormPlatformRepository) Update(platform *models.Platform) error {
	return r.db.Save(platform).Error
}

// Delete 软删除平台
func (r *GormPlatformRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Platform{}, id).Error
}

// List 分页查询平台
func (r *GormPlatformRepository) List(filter PlatformListFilter) ([]models.Platform, int64, error) {
	query := r.db.Model(&models.Platform{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var platforms []models.Platform
	if err := query.Order("id desc").Find(&platforms).Error; err != nil {
		return nil, 0, err
	}
	return platforms, total, nil
}

// ListLowBalance 查询余额低于预警阈值的平台
func (r *GormPlatformRepository) ListLowBalance() ([]models.Platform, error) {
	var platforms []models.Platform
	if err := r.db.
		Where("is_active = ? AND low_balance_threshold > 0 AND credit_balance <= low_balance_threshold", true).
		Order("credit_balance asc").
		Find(&platforms).Error; err != nil {
		return nil, err
	}
	return platforms, nil
}
