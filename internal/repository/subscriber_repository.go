package repository

import (
	"errors"
	"strings"

	"github.com/digistock/internal/models"

	"gorm.io/gorm"
)

// SubscriberRepository 订阅客户数据访问接口
type SubscriberRepository interface {
	GetByID(id uint) (*models.Subscriber, error)
	Create(subscriber *models.Subscriber) error
	Update(subscriber *models.Subscriber) error
	Delete(id uint) error
	List(filter SubscriberListFilter) ([]models.Subscriber, int64, error)
	WithTx(tx *gorm.DB) SubscriberRepository
}

// GormSubscriberRepository GORM 订阅客户仓储实现
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository 创建订阅客户仓储
func NewSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSubscriberRepository) WithTx(tx *gorm.DB) SubscriberRepository {
	if tx == nil {
		return r
	}
	return &GormSubscriberRepository{db: tx}
}

// GetByID 按ID获取订阅客户
func (r *GormSubscriberRepository) GetByID(id uint) (*models.Subscriber, error) {
	if id == 0 {
		return nil, nil
	}
	var subscriber models.Subscriber
	if err := r.db.First(&subscriber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// Create 创建订阅客户
func (r *GormSubscriberRepository) Create(subscriber *models.Subscriber) error {
	return r.db.Create(subscriber).Error
}

// Update 更新订阅客户
func (r *GormSubscriberRepository) Update(subscriber *models.Subscriber) error {
	return r.db.Save(subscriber).Error
}

// Delete 软删除订阅客户
func (r *GormSubscriberRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Subscriber{}, id).Error
}

// List 分页查询订阅客户
func (r *GormSubscriberRepository) List(filter SubscriberListFilter) ([]models.Subscriber, int64, error) {
	query := r.db.Model(&models.Subscriber{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var subscribers []models.Subscriber
	if err := query.Order("id desc").Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}
