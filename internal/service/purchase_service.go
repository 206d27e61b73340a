package service

import (
	"strings"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseService 进货服务：入库与加权平均进价维护
type PurchaseService struct {
	purchaseRepo      repository.PurchaseRepository
	productRepo       repository.ProductRepository
	stockMovementRepo repository.StockMovementRepository
	now               func() time.Time
}

// NewPurchaseService 创建进货服务
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	stockMovementRepo repository.StockMovementRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:      purchaseRepo,
		productRepo:       productRepo,
		stockMovementRepo: stockMovementRepo,
		now:               time.Now,
	}
}

// RecordPurchaseInput 进货录入输入
type RecordPurchaseInput struct {
	ProductID     uint
	Quantity      int
	UnitCost      models.Money
	PaymentStatus string // pending / paid，空值按 paid 处理
	PaymentMethod string
	PurchasedAt   *time.Time
	Note          string
}

// UpdatePurchasePaymentInput 进货单付款信息更新输入（数量与金额不可改）
type UpdatePurchasePaymentInput struct {
	PaymentStatus string
	PaymentMethod string
	Note          string
}

// GetPurchase 按ID获取进货单
func (s *PurchaseService) GetPurchase(id uint) (*models.StockPurchase, error) {
	purchase, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// ListPurchases 分页查询进货单
func (s *PurchaseService) ListPurchases(filter repository.PurchaseListFilter) ([]models.StockPurchase, int64, error) {
	return s.purchaseRepo.List(filter)
}

// RecordPurchase 录入进货单。
// 入库流水与加权平均进价在同一事务内更新：
// 新均价 = (旧均价×旧库存 + 本次总成本) / (旧库存 + 本次数量)。
func (s *PurchaseService) RecordPurchase(input RecordPurchaseInput) (*models.StockPurchase, error) {
	if input.Quantity <= 0 {
		return nil, ErrValidation
	}
	unitCost := input.UnitCost.Decimal.Round(2)
	if unitCost.LessThan(decimal.Zero) {
		return nil, ErrValidation
	}
	paymentStatus := strings.TrimSpace(input.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = constants.PaymentStatusPaid
	}
	if paymentStatus != constants.PaymentStatusPaid && paymentStatus != constants.PaymentStatusPending {
		return nil, ErrValidation
	}

	now := s.now()
	purchasedAt := now
	if input.PurchasedAt != nil {
		purchasedAt = *input.PurchasedAt
	}

	var purchaseResult *models.StockPurchase
	err := s.purchaseRepo.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).GetByIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		if !product.IsActive {
			return ErrProductInactive
		}

		quantity := decimal.NewFromInt(int64(input.Quantity))
		totalCost := unitCost.Mul(quantity).Round(2)

		purchase := &models.StockPurchase{
			PurchaseNo:    generatePurchaseNo(),
			ProductID:     product.ID,
			Quantity:      input.Quantity,
			UnitCost:      models.NewMoneyFromDecimal(unitCost),
			TotalCost:     models.NewMoneyFromDecimal(totalCost),
			PaymentStatus: paymentStatus,
			PaymentMethod: strings.TrimSpace(input.PaymentMethod),
			Note:          strings.TrimSpace(input.Note),
			PurchasedAt:   purchasedAt,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.purchaseRepo.WithTx(tx).Create(purchase); err != nil {
			return ErrPurchaseCreateFailed
		}

		// 加权平均进价基于入库前的库存计算，与入库流水一起落库
		oldStock := decimal.NewFromInt(int64(product.CurrentStock))
		newStock := oldStock.Add(quantity)
		if newStock.GreaterThan(decimal.Zero) {
			newAverage := product.AveragePurchasePrice.Decimal.
				Mul(oldStock).
				Add(totalCost).
				Div(newStock).
				Round(2)
			product.AveragePurchasePrice = models.NewMoneyFromDecimal(newAverage)
		}

		if _, err := applyStockMovement(
			tx, s.productRepo, s.stockMovementRepo,
			product, constants.StockMovementTypePurchase, input.Quantity, purchase.PurchaseNo, now,
		); err != nil {
			return err
		}

		purchaseResult = purchase
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchaseResult, nil
}

// UpdatePurchasePayment 更新进货单付款状态、方式与备注。
// 数量与成本不开放修改，避免与库存流水及商品均价脱节。
func (s *PurchaseService) UpdatePurchasePayment(id uint, input UpdatePurchasePaymentInput) (*models.StockPurchase, error) {
	purchase, err := s.GetPurchase(id)
	if err != nil {
		return nil, err
	}
	if status := strings.TrimSpace(input.PaymentStatus); status != "" {
		if status != constants.PaymentStatusPaid && status != constants.PaymentStatusPending {
			return nil, ErrValidation
		}
		purchase.PaymentStatus = status
	}
	purchase.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	purchase.Note = strings.TrimSpace(input.Note)
	purchase.UpdatedAt = s.now()
	if err := s.purchaseRepo.Update(purchase); err != nil {
		return nil, ErrPurchaseUpdateFailed
	}
	return purchase, nil
}
