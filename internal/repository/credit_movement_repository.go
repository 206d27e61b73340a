package repository

import (
	"errors"
	"strings"

	"github.com/digistock/internal/models"

	"gorm.io/gorm"
)

// CreditMovementRepository 平台额度流水数据访问接口（仅追加）
type CreditMovementRepository interface {
	Create(movement *models.PlatformCreditMovement) error
	GetLatestByPlatformID(platformID uint) (*models.PlatformCreditMovement, error)
	List(filter CreditMovementListFilter) ([]models.PlatformCreditMovement, int64, error)
	WithTx(tx *gorm.DB) CreditMovementRepository
}

// GormCreditMovementRepository GORM 平台额度流水仓储实现
type GormCreditMovementRepository struct {
	db *gorm.DB
}

// NewCreditMovementRepository 创建平台额度流水仓储
func NewCreditMovementRepository(db *gorm.DB) *GormCreditMovementRepository {
	return &GormCreditMovementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCreditMovementRepository) WithTx(tx *gorm.DB) CreditMovementRepository {
	if tx == nil {
		return r
	}
	return &GormCreditMovementRepository{db: tx}
}

// Create 追加额度流水
func (r *GormCreditMovementRepository) Create(movement *models.PlatformCreditMovement) error {
	return r.db.Create(movement).Error
}

// GetLatestByPlatformID 获取平台最近一条额度流水
func (r *GormCreditMovementRepository) GetLatestByPlatformID(platformID uint) (*models.PlatformCreditMovement, error) {
	if platformID == 0 {
		return nil, nil
	}
	var movement models.PlatformCreditMovement
	if err := r.db.Where("platform_id = ?", platformID).
		Order("id desc").First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movement, nil
}

// List 分页查询额度流水
func (r *GormCreditMovementRepository) List(filter CreditMovementListFilter) ([]models.PlatformCreditMovement, int64, error) {
	query := r.db.Model(&models.PlatformCreditMovement{})
	if filter.PlatformID != 0 {
		query = query.Where("platform_id = ?", filter.PlatformID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if reference := strings.TrimSpace(filter.Reference); reference != "" {
		query = query.Where("reference = ?", reference)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var movements []models.PlatformCreditMovement
	if err := query.Order("id desc").Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}
