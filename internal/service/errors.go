package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// 通用业务错误
var (
	ErrValidation           = errors.New("参数校验失败")
	ErrInvalidPaymentAmount = errors.New("付款金额不合法")

	ErrProductNotFound    = errors.New("商品不存在")
	ErrProductInactive    = errors.New("商品已下架")
	ErrProductInUse       = errors.New("商品已被销售或进货单引用，无法删除")
	ErrPlatformNotFound   = errors.New("平台不存在")
	ErrPlatformInactive   = errors.New("平台已停用")
	ErrSaleNotFound       = errors.New("销售单不存在")
	ErrPurchaseNotFound   = errors.New("进货单不存在")
	ErrSubscriberNotFound = errors.New("订阅客户不存在")

	ErrProductCreateFailed  = errors.New("商品创建失败")
	ErrProductUpdateFailed  = errors.New("商品更新失败")
	ErrPlatformCreateFailed = errors.New("平台创建失败")
	ErrPlatformUpdateFailed = errors.New("平台更新失败")
	ErrSaleCreateFailed     = errors.New("销售单创建失败")
	ErrSaleUpdateFailed     = errors.New("销售单更新失败")
	ErrPurchaseCreateFailed = errors.New("进货单创建失败")
	ErrPurchaseUpdateFailed = errors.New("进货单更新失败")
	ErrMovementCreateFailed = errors.New("流水写入失败")
	ErrPaymentCreateFailed  = errors.New("付款记录写入失败")
)

// InsufficientStockError 库存不足错误
type InsufficientStockError struct {
	ProductID uint
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("商品「%s」库存不足：当前 %d，需要 %d", e.Product, e.Available, e.Requested)
}

// InsufficientCreditError 平台额度不足错误（携带缺口金额用于展示）
type InsufficientCreditError struct {
	PlatformID uint
	Platform   string
	Balance    decimal.Decimal
	Required   decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("平台「%s」额度不足：当前余额 %s，本次需要 %s，缺口 %s",
		e.Platform, e.Balance.StringFixed(2), e.Required.StringFixed(2), e.Shortfall().StringFixed(2))
}

// Shortfall 返回缺口金额
func (e *InsufficientCreditError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Balance).Round(2)
}
