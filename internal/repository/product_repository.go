package repository

import (
	"errors"
	"strings"

	"github.com/digistock/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetByIDForUpdate(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	List(filter ProductListFilter) ([]models.Product, int64, error)
	ListLowStock() ([]models.Product, error)
	CountReferences(productID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 商品仓储实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDForUpdate 按ID加锁获取商品
func (r *GormProductRepository) GetByIDForUpdate(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 软删除商品
func (r *GormProductRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Product{}, id).Error
}

// List 分页查询商品
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.PlatformID != 0 {
		query = query.Where("platform_id = ?", filter.PlatformID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.OnlyLowStock {
		query = query.Where("min_stock_alert > 0 AND current_stock <= min_stock_alert")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithPlatform {
		query = query.Preload("Platform")
	}

	var products []models.Product
	if err := query.Order("id desc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListLowStock 查询低于预警阈值的商品
func (r *GormProductRepository) ListLowStock() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.
		Where("is_active = ? AND min_stock_alert > 0 AND current_stock <= min_stock_alert", true).
		Order("current_stock asc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountReferences 统计商品被销售/进货单引用的次数
func (r *GormProductRepository) CountReferences(productID uint) (int64, error) {
	if productID == 0 {
		return 0, nil
	}
	var sales int64
	if err := r.db.Model(&models.StockSale{}).Where("product_id = ?", productID).Count(&sales).Error; err != nil {
		return 0, err
	}
	var purchases int64
	if err := r.db.Model(&models.StockPurchase{}).Where("product_id = ?", productID).Count(&purchases).Error; err != nil {
		return 0, err
	}
	return sales + purchases, nil
}
