package service

import (
	"strings"
	"time"

	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品目录服务
type ProductService struct {
	productRepo       repository.ProductRepository
	platformRepo      repository.PlatformRepository
	stockMovementRepo repository.StockMovementRepository
	now               func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	platformRepo repository.PlatformRepository,
	stockMovementRepo repository.StockMovementRepository,
) *ProductService {
	return &ProductService{
		productRepo:       productRepo,
		platformRepo:      platformRepo,
		stockMovementRepo: stockMovementRepo,
		now:               time.Now,
	}
}

// ProductInput 商品创建/更新输入。
// 库存字段不在其中：库存只能通过进货与销售的流水变更。
type ProductInput struct {
	Name                string
	Category            string
	MinStockAlert       int
	SuggestedSellPrice  models.Money
	PlatformID          uint // 0 表示无归属平台
	PlatformBuyingPrice models.Money
	IsActive            *bool
}

// GetProduct 按ID获取商品
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 分页查询商品
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ListLowStock 查询低库存商品
func (s *ProductService) ListLowStock() ([]models.Product, error) {
	return s.productRepo.ListLowStock()
}

// ListStockMovements 分页查询库存流水
func (s *ProductService) ListStockMovements(filter repository.StockMovementListFilter) ([]models.StockMovement, int64, error) {
	return s.stockMovementRepo.List(filter)
}

// CreateProduct 创建商品（初始库存为 0，进货后通过流水累加）
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	now := s.now()
	product := &models.Product{
		Name:                 strings.TrimSpace(input.Name),
		Category:             strings.TrimSpace(input.Category),
		CurrentStock:         0,
		MinStockAlert:        input.MinStockAlert,
		AveragePurchasePrice: models.ZeroMoney(),
		SuggestedSellPrice:   input.SuggestedSellPrice,
		PlatformBuyingPrice:  input.PlatformBuyingPrice,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if input.PlatformID != 0 {
		platformID := input.PlatformID
		product.PlatformID = &platformID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, ErrProductCreateFailed
	}
	return product, nil
}

// UpdateProduct 更新商品基础信息（库存与均价不开放修改）
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.MinStockAlert = input.MinStockAlert
	product.SuggestedSellPrice = input.SuggestedSellPrice
	product.PlatformBuyingPrice = input.PlatformBuyingPrice
	if input.PlatformID != 0 {
		platformID := input.PlatformID
		product.PlatformID = &platformID
	} else {
		product.PlatformID = nil
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = s.now()
	if err := s.productRepo.Update(product); err != nil {
		return nil, ErrProductUpdateFailed
	}
	return product, nil
}

// DeleteProduct 删除商品。已被销售或进货单引用的商品不可删除，只能下架。
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	references, err := s.productRepo.CountReferences(product.ID)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrProductInUse
	}
	return s.productRepo.Delete(product.ID)
}

func (s *ProductService) validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrValidation
	}
	if input.MinStockAlert < 0 {
		return ErrValidation
	}
	if input.SuggestedSellPrice.Decimal.LessThan(decimal.Zero) ||
		input.PlatformBuyingPrice.Decimal.LessThan(decimal.Zero) {
		return ErrValidation
	}
	if input.PlatformID != 0 {
		platform, err := s.platformRepo.GetByID(input.PlatformID)
		if err != nil {
			return err
		}
		if platform == nil {
			return ErrPlatformNotFound
		}
	}
	return nil
}
