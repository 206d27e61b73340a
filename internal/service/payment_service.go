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

// PaymentService 销售单收款对账服务。
// 所有收款路径都在加锁的销售单行上执行，付款状态始终由金额推导。
type PaymentService struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewPaymentService 创建收款服务
func NewPaymentService(saleRepo repository.SaleRepository) *PaymentService {
	return &PaymentService{
		saleRepo: saleRepo,
		now:      time.Now,
	}
}

// RecordPaymentInput 收款录入输入
type RecordPaymentInput struct {
	Amount models.Money
	Method string
	Note   string
	PaidAt *time.Time
}

// RecordPayment 录入一笔部分或全额收款。
// 金额必须为正且不超过剩余未收金额，超额收款直接拒绝。
func (s *PaymentService) RecordPayment(saleID uint, input RecordPaymentInput) (*models.StockSale, error) {
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPaymentAmount
	}

	now := s.now()
	paidAt := now
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	if err := s.saleRepo.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.WithTx(tx).GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrSaleNotFound
		}
		if amount.GreaterThan(sale.RemainingAmount.Decimal) {
			return ErrInvalidPaymentAmount
		}
		return s.applyPayment(tx, sale, amount, strings.TrimSpace(input.Method), strings.TrimSpace(input.Note), paidAt, now)
	}); err != nil {
		return nil, err
	}
	return s.saleRepo.GetByID(saleID)
}

// MarkFullyPaid 将销售单一次结清：按剩余未收金额生成一笔收款记录。
// 已结清的单再次调用视为金额不合法。
func (s *PaymentService) MarkFullyPaid(saleID uint) (*models.StockSale, error) {
	now := s.now()
	if err := s.saleRepo.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.WithTx(tx).GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrSaleNotFound
		}
		remaining := sale.RemainingAmount.Decimal.Round(2)
		if remaining.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidPaymentAmount
		}
		return s.applyPayment(tx, sale, remaining, sale.PaymentMethod, "一次结清", now, now)
	}); err != nil {
		return nil, err
	}
	return s.saleRepo.GetByID(saleID)
}

// ResetToPending 清空销售单全部收款记录并回到待收款状态
func (s *PaymentService) ResetToPending(saleID uint) (*models.StockSale, error) {
	now := s.now()
	if err := s.saleRepo.Transaction(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.WithTx(tx).GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrSaleNotFound
		}
		if err := s.saleRepo.WithTx(tx).DeletePaymentRecords(sale.ID); err != nil {
			return ErrSaleUpdateFailed
		}
		sale.PaidAmount = models.ZeroMoney()
		sale.RemainingAmount = sale.TotalPrice
		sale.PaymentStatus = constants.PaymentStatusPending
		sale.UpdatedAt = now
		if err := s.saleRepo.WithTx(tx).Update(sale); err != nil {
			return ErrSaleUpdateFailed
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.saleRepo.GetByID(saleID)
}

// applyPayment 在事务内落一笔收款并重算销售单付款状态
func (s *PaymentService) applyPayment(
	tx *gorm.DB,
	sale *models.StockSale,
	amount decimal.Decimal,
	method string,
	note string,
	paidAt time.Time,
	now time.Time,
) error {
	record := &models.PaymentRecord{
		SaleID:    sale.ID,
		Amount:    models.NewMoneyFromDecimal(amount),
		Method:    method,
		Note:      note,
		PaidAt:    paidAt,
		CreatedAt: now,
	}
	if err := s.saleRepo.WithTx(tx).CreatePaymentRecord(record); err != nil {
		return ErrPaymentCreateFailed
	}

	paid := sale.PaidAmount.Decimal.Add(amount).Round(2)
	total := sale.TotalPrice.Decimal.Round(2)
	sale.PaidAmount = models.NewMoneyFromDecimal(paid)
	sale.RemainingAmount = models.NewMoneyFromDecimal(total.Sub(paid))
	sale.PaymentStatus = derivePaymentStatus(paid, total)
	sale.UpdatedAt = now
	if err := s.saleRepo.WithTx(tx).Update(sale); err != nil {
		return ErrSaleUpdateFailed
	}
	return nil
}
