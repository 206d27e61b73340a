package repository

import (
	"errors"
	"strings"

	"github.com/digistock/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseRepository 进货单数据访问接口
type PurchaseRepository interface {
	GetByID(id uint) (*models.StockPurchase, error)
	GetByIDForUpdate(id uint) (*models.StockPurchase, error)
	GetByPurchaseNo(purchaseNo string) (*models.StockPurchase, error)
	Create(purchase *models.StockPurchase) error
	Update(purchase *models.StockPurchase) error
	List(filter PurchaseListFilter) ([]models.StockPurchase, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PurchaseRepository
}

// GormPurchaseRepository GORM 进货单仓储实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建进货单仓储
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPurchaseRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 按ID获取进货单
func (r *GormPurchaseRepository) GetByID(id uint) (*models.StockPurchase, error) {
	if id == 0 {
		return nil, nil
	}
	var purchase models.StockPurchase
	if err := r.db.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByIDForUpdate 按ID加锁获取进货单
func (r *GormPurchaseRepository) GetByIDForUpdate(id uint) (*models.StockPurchase, error) {
	if id == 0 {
		return nil, nil
	}
	var purchase models.StockPurchase
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByPurchaseNo 按进货单号获取进货单
func (r *GormPurchaseRepository) GetByPurchaseNo(purchaseNo string) (*models.StockPurchase, error) {
	purchaseNo = strings.TrimSpace(purchaseNo)
	if purchaseNo == "" {
		return nil, nil
	}
	var purchase models.StockPurchase
	if err := r.db.Where("purchase_no = ?", purchaseNo).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// Create 创建进货单
func (r *GormPurchaseRepository) Create(purchase *models.StockPurchase) error {
	return r.db.Create(purchase).Error
}

// Update 更新进货单
func (r *GormPurchaseRepository) Update(purchase *models.StockPurchase) error {
	return r.db.Save(purchase).Error
}

// List 分页查询进货单
func (r *GormPurchaseRepository) List(filter PurchaseListFilter) ([]models.StockPurchase, int64, error) {
	query := r.db.Model(&models.StockPurchase{})
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if purchaseNo := strings.TrimSpace(filter.PurchaseNo); purchaseNo != "" {
		query = query.Where("purchase_no = ?", purchaseNo)
	}
	if filter.PurchasedFrom != nil {
		query = query.Where("purchased_at >= ?", *filter.PurchasedFrom)
	}
	if filter.PurchasedTo != nil {
		query = query.Where("purchased_at <= ?", *filter.PurchasedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var purchases []models.StockPurchase
	if err := query.Preload("Product").Order("id desc").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}
