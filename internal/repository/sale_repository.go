package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaleRepository 销售单数据访问接口
type SaleRepository interface {
	GetByID(id uint) (*models.StockSale, error)
	GetByIDForUpdate(id uint) (*models.StockSale, error)
	GetBySaleNo(saleNo string) (*models.StockSale, error)
	Create(sale *models.StockSale) error
	Update(sale *models.StockSale) error
	List(filter SaleListFilter) ([]models.StockSale, int64, error)
	ListExpiredSubscriptions(now time.Time) ([]models.StockSale, error)
	CreatePaymentRecord(record *models.PaymentRecord) error
	DeletePaymentRecords(saleID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) SaleRepository
}

// GormSaleRepository GORM 销售单仓储实现
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售单仓储
func NewSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSaleRepository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &GormSaleRepository{db: tx}
}

// Transaction 执行事务
func (r *GormSaleRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取销售单（含付款记录）
func (r *GormSaleRepository) GetByID(id uint) (*models.StockSale, error) {
	if id == 0 {
		return nil, nil
	}
	var sale models.StockSale
	if err := r.db.Preload("PaymentRecords", func(db *gorm.DB) *gorm.DB {
		return db.Order("payment_records.id asc")
	}).First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetByIDForUpdate 按ID加锁获取销售单
func (r *GormSaleRepository) GetByIDForUpdate(id uint) (*models.StockSale, error) {
	if id == 0 {
		return nil, nil
	}
	var sale models.StockSale
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// GetBySaleNo 按销售单号获取销售单
func (r *GormSaleRepository) GetBySaleNo(saleNo string) (*models.StockSale, error) {
	saleNo = strings.TrimSpace(saleNo)
	if saleNo == "" {
		return nil, nil
	}
	var sale models.StockSale
	if err := r.db.Preload("PaymentRecords").Where("sale_no = ?", saleNo).First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

// Create 创建销售单
func (r *GormSaleRepository) Create(sale *models.StockSale) error {
	return r.db.Create(sale).Error
}

// Update 更新销售单
func (r *GormSaleRepository) Update(sale *models.StockSale) error {
	return r.db.Save(sale).Error
}

// List 分页查询销售单
func (r *GormSaleRepository) List(filter SaleListFilter) ([]models.StockSale, int64, error) {
	query := r.db.Model(&models.StockSale{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.PlatformID != 0 {
		query = query.Where("platform_id = ?", filter.PlatformID)
	}
	if filter.SubscriberID != 0 {
		query = query.Where("subscriber_id = ?", filter.SubscriberID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if saleNo := strings.TrimSpace(filter.SaleNo); saleNo != "" {
		query = query.Where("sale_no = ?", saleNo)
	}
	if filter.SoldFrom != nil {
		query = query.Where("sold_at >= ?", *filter.SoldFrom)
	}
	if filter.SoldTo != nil {
		query = query.Where("sold_at <= ?", *filter.SoldTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var sales []models.StockSale
	if err := query.Preload("Product").Preload("Platform").Order("id desc").Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// ListExpiredSubscriptions 查询已到期但仍标记为生效的订阅销售单
func (r *GormSaleRepository) ListExpiredSubscriptions(now time.Time) ([]models.StockSale, error) {
	var sales []models.StockSale
	if err := r.db.
		Where("payment_type = ? AND subscription_status = ? AND subscription_ends_at IS NOT NULL AND subscription_ends_at <= ?",
			constants.PaymentTypeRecurring, constants.SubscriptionStatusActive, now).
		Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// CreatePaymentRecord 创建付款记录
func (r *GormSaleRepository) CreatePaymentRecord(record *models.PaymentRecord) error {
	return r.db.Create(record).Error
}

// DeletePaymentRecords 删除销售单的全部付款记录
func (r *GormSaleRepository) DeletePaymentRecords(saleID uint) error {
	if saleID == 0 {
		return nil
	}
	return r.db.Where("sale_id = ?", saleID).Delete(&models.PaymentRecord{}).Error
}
