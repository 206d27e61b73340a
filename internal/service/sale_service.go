package service

import (
	"strings"
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/queue"
	"github.com/digistock/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService 销售服务：出库、平台额度扣减与订阅期计算的编排入口
type SaleService struct {
	saleRepo           repository.SaleRepository
	productRepo        repository.ProductRepository
	platformRepo       repository.PlatformRepository
	subscriberRepo     repository.SubscriberRepository
	stockMovementRepo  repository.StockMovementRepository
	creditMovementRepo repository.CreditMovementRepository
	queueClient        *queue.Client
	now                func() time.Time
}

// NewSaleService 创建销售服务
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	platformRepo repository.PlatformRepository,
	subscriberRepo repository.SubscriberRepository,
	stockMovementRepo repository.StockMovementRepository,
	creditMovementRepo repository.CreditMovementRepository,
	queueClient *queue.Client,
) *SaleService {
	return &SaleService{
		saleRepo:           saleRepo,
		productRepo:        productRepo,
		platformRepo:       platformRepo,
		subscriberRepo:     subscriberRepo,
		stockMovementRepo:  stockMovementRepo,
		creditMovementRepo: creditMovementRepo,
		queueClient:        queueClient,
		now:                time.Now,
	}
}

// RecordSaleInput 销售录入输入
type RecordSaleInput struct {
	ProductID          uint
	PlatformID         uint // 0 表示沿用商品归属平台
	SubscriberID       uint
	Quantity           int
	UnitPrice          models.Money
	PaidAmount         models.Money // 录入时已收金额，0 表示未收款
	PaymentMethod      string
	PaymentType        string // one_time / recurring，空值按 one_time 处理
	SubscriptionMonths int
	SoldAt             *time.Time
	Note               string
}

// UpdateSalePaymentInput 销售单付款信息更新输入（金额与数量字段不可改）
type UpdateSalePaymentInput struct {
	PaymentMethod string
	Note          string
}

// GetSale 按ID获取销售单
func (s *SaleService) GetSale(id uint) (*models.StockSale, error) {
	sale, err := s.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// ListSales 分页查询销售单
func (s *SaleService) ListSales(filter repository.SaleListFilter) ([]models.StockSale, int64, error) {
	return s.saleRepo.List(filter)
}

// RecordSale 录入销售单。
// 校验、出库、平台额度扣减与付款记录在同一事务内完成；任一步失败则整体回滚。
func (s *SaleService) RecordSale(input RecordSaleInput) (*models.StockSale, error) {
	paymentType := strings.TrimSpace(input.PaymentType)
	if paymentType == "" {
		paymentType = constants.PaymentTypeOneTime
	}
	if paymentType != constants.PaymentTypeOneTime && paymentType != constants.PaymentTypeRecurring {
		return nil, ErrValidation
	}
	if input.Quantity <= 0 {
		return nil, ErrValidation
	}
	unitPrice := input.UnitPrice.Decimal.Round(2)
	if unitPrice.LessThan(decimal.Zero) {
		return nil, ErrValidation
	}
	if paymentType == constants.PaymentTypeRecurring && input.SubscriptionMonths < 1 {
		return nil, ErrValidation
	}
	initialPaid := input.PaidAmount.Decimal.Round(2)
	if initialPaid.LessThan(decimal.Zero) {
		return nil, ErrInvalidPaymentAmount
	}

	now := s.now()
	soldAt := now
	if input.SoldAt != nil {
		soldAt = *input.SoldAt
	}

	var saleResult *models.StockSale
	var productResult *models.Product
	var platformResult *models.Platform
	err := s.saleRepo.Transaction(func(tx *gorm.DB) error {
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
		if input.Quantity > product.CurrentStock {
			return &InsufficientStockError{
				ProductID: product.ID,
				Product:   product.Name,
				Available: product.CurrentStock,
				Requested: input.Quantity,
			}
		}

		if input.SubscriberID != 0 {
			subscriber, err := s.subscriberRepo.WithTx(tx).GetByID(input.SubscriberID)
			if err != nil {
				return err
			}
			if subscriber == nil {
				return ErrSubscriberNotFound
			}
		}

		// 平台与扣减额度：优先使用入参平台，否则沿用商品归属平台
		platformID := input.PlatformID
		if platformID == 0 && product.PlatformID != nil {
			platformID = *product.PlatformID
		}
		buyingPrice := product.PlatformBuyingPrice.Decimal.Round(2)

		var platform *models.Platform
		required := decimal.Zero
		if platformID != 0 && buyingPrice.GreaterThan(decimal.Zero) {
			platform, err = s.platformRepo.WithTx(tx).GetByIDForUpdate(platformID)
			if err != nil {
				return err
			}
			if platform == nil {
				return ErrPlatformNotFound
			}
			if !platform.IsActive {
				return ErrPlatformInactive
			}
			required = buyingPrice.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2)
			if required.GreaterThan(platform.CreditBalance.Decimal) {
				return &InsufficientCreditError{
					PlatformID: platform.ID,
					Platform:   platform.Name,
					Balance:    platform.CreditBalance.Decimal.Round(2),
					Required:   required,
				}
			}
		}

		quantity := decimal.NewFromInt(int64(input.Quantity))
		totalPrice := unitPrice.Mul(quantity).Round(2)
		unitCost := buyingPrice
		if !unitCost.GreaterThan(decimal.Zero) {
			unitCost = product.AveragePurchasePrice.Decimal.Round(2)
		}
		costPrice := unitCost.Mul(quantity).Round(2)
		profit := totalPrice.Sub(costPrice).Round(2)

		if initialPaid.GreaterThan(totalPrice) {
			return ErrInvalidPaymentAmount
		}

		sale := &models.StockSale{
			SaleNo:              generateSaleNo(),
			ProductID:           product.ID,
			Quantity:            input.Quantity,
			UnitPrice:           models.NewMoneyFromDecimal(unitPrice),
			TotalPrice:          models.NewMoneyFromDecimal(totalPrice),
			PlatformBuyingPrice: models.NewMoneyFromDecimal(buyingPrice),
			CostPrice:           models.NewMoneyFromDecimal(costPrice),
			Profit:              models.NewMoneyFromDecimal(profit),
			PaymentStatus:       derivePaymentStatus(initialPaid, totalPrice),
			PaidAmount:          models.NewMoneyFromDecimal(initialPaid),
			RemainingAmount:     models.NewMoneyFromDecimal(totalPrice.Sub(initialPaid)),
			PaymentMethod:       strings.TrimSpace(input.PaymentMethod),
			PaymentType:         paymentType,
			SubscriptionStatus:  constants.SubscriptionStatusNone,
			Note:                strings.TrimSpace(input.Note),
			SoldAt:              soldAt,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if platform != nil {
			sale.PlatformID = &platform.ID
		}
		if input.SubscriberID != 0 {
			subscriberID := input.SubscriberID
			sale.SubscriberID = &subscriberID
		}
		if paymentType == constants.PaymentTypeRecurring {
			startsAt := soldAt
			endsAt := addMonths(startsAt, input.SubscriptionMonths)
			sale.SubscriptionMonths = input.SubscriptionMonths
			sale.SubscriptionStartsAt = &startsAt
			sale.SubscriptionEndsAt = &endsAt
			sale.SubscriptionStatus = constants.SubscriptionStatusActive
		}

		if err := s.saleRepo.WithTx(tx).Create(sale); err != nil {
			return ErrSaleCreateFailed
		}

		if _, err := applyStockMovement(
			tx, s.productRepo, s.stockMovementRepo,
			product, constants.StockMovementTypeSale, -input.Quantity, sale.SaleNo, now,
		); err != nil {
			return err
		}

		if platform != nil && required.GreaterThan(decimal.Zero) {
			if _, err := applyCreditMovement(
				tx, s.platformRepo, s.creditMovementRepo,
				platform, required.Neg(), constants.CreditMovementTypeDeduction, sale.SaleNo, now,
			); err != nil {
				return err
			}
		}

		if initialPaid.GreaterThan(decimal.Zero) {
			record := &models.PaymentRecord{
				SaleID:    sale.ID,
				Amount:    models.NewMoneyFromDecimal(initialPaid),
				Method:    sale.PaymentMethod,
				Note:      "录单收款",
				PaidAt:    soldAt,
				CreatedAt: now,
			}
			if err := s.saleRepo.WithTx(tx).CreatePaymentRecord(record); err != nil {
				return ErrPaymentCreateFailed
			}
		}

		saleResult = sale
		productResult = product
		platformResult = platform
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueThresholdAlerts(productResult, platformResult)
	return saleResult, nil
}

// UpdateSalePayment 更新销售单的付款方式与备注。
// 数量与金额字段不开放修改，避免与库存/额度流水脱节；收款通过付款记录接口进行。
func (s *SaleService) UpdateSalePayment(id uint, input UpdateSalePaymentInput) (*models.StockSale, error) {
	sale, err := s.GetSale(id)
	if err != nil {
		return nil, err
	}
	sale.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	sale.Note = strings.TrimSpace(input.Note)
	sale.UpdatedAt = s.now()
	if err := s.saleRepo.Update(sale); err != nil {
		return nil, ErrSaleUpdateFailed
	}
	return sale, nil
}

// ExpireDueSubscriptions 将已过期的订阅销售单标记为 expired，返回处理数量
func (s *SaleService) ExpireDueSubscriptions(now time.Time) (int, error) {
	sales, err := s.saleRepo.ListExpiredSubscriptions(now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range sales {
		sale := sales[i]
		sale.SubscriptionStatus = constants.SubscriptionStatusExpired
		sale.UpdatedAt = now
		if err := s.saleRepo.Update(&sale); err != nil {
			return expired, ErrSaleUpdateFailed
		}
		expired++
	}
	return expired, nil
}

// enqueueThresholdAlerts 销售落库后检查库存/额度阈值并推送预警任务
func (s *SaleService) enqueueThresholdAlerts(product *models.Product, platform *models.Platform) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if product != nil && product.MinStockAlert > 0 && product.CurrentStock <= product.MinStockAlert {
		if err := s.queueClient.EnqueueLowStockAlert(queue.LowStockAlertPayload{ProductID: product.ID}); err != nil {
			logger.Warnw("sale_enqueue_low_stock_alert_failed", "product_id", product.ID, "error", err)
		}
	}
	if platform != nil &&
		platform.LowBalanceThreshold.Decimal.GreaterThan(decimal.Zero) &&
		!platform.CreditBalance.Decimal.GreaterThan(platform.LowBalanceThreshold.Decimal) {
		if err := s.queueClient.EnqueueLowCreditAlert(queue.LowCreditAlertPayload{PlatformID: platform.ID}); err != nil {
			logger.Warnw("sale_enqueue_low_credit_alert_failed", "platform_id", platform.ID, "error", err)
		}
	}
}

// derivePaymentStatus 按已付金额推导付款状态
func derivePaymentStatus(paid, total decimal.Decimal) string {
	switch {
	case total.GreaterThan(decimal.Zero) && !paid.LessThan(total):
		return constants.PaymentStatusPaid
	case paid.GreaterThan(decimal.Zero):
		return constants.PaymentStatusPartial
	default:
		return constants.PaymentStatusPending
	}
}
