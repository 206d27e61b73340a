package repository

import (
	"errors"
	"strings"

	"github.com/digistock/internal/models"

	"gorm.io/gorm"
)

// StockMovementRepository 库存流水数据访问接口（仅追加）
type StockMovementRepository interface {
	Create(movement *models.StockMovement) error
	GetLatestByProductID(productID uint) (*models.StockMovement, error)
	List(filter StockMovementListFilter) ([]models.StockMovement, int64, error)
	WithTx(tx *gorm.DB) StockMovementRepository
}

// GormStockMovementRepository GORM 库存流水仓储实现
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository 创建库存流水仓储
func NewStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockMovementRepository) WithTx(tx *gorm.DB) StockMovementRepository {
	if tx == nil {
		return r
	}
	return &GormStockMovementRepository{db: tx}
}

// Create 追加库存流水
func (r *GormStockMovementRepository) Create(movement *models.StockMovement) error {
	return r.db.Create(movement).Error
}

// GetLatestByProductID 获取商品最近一条库存流水
func (r *GormStockMovementRepository) GetLatestByProductID(productID uint) (*models.StockMovement, error) {
	if productID == 0 {
		return nil, nil
	}
	var movement models.StockMovement
	if err := r.db.Where("product_id = ?", productID).
		Order("id desc").First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movement, nil
}

// List 分页查询库存流水
func (r *GormStockMovementRepository) List(filter StockMovementListFilter) ([]models.StockMovement, int64, error) {
	query := r.db.Model(&models.StockMovement{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
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

	var movements []models.StockMovement
	if err := query.Order("id desc").Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}
