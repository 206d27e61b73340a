package admin

import (
	"strings"
	"time"

	"github.com/digistock/internal/http/response"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordSaleRequest 销售录入请求
type RecordSaleRequest struct {
	ProductID          uint   `json:"product_id" binding:"required"`
	PlatformID         uint   `json:"platform_id"`
	SubscriberID       uint   `json:"subscriber_id"`
	Quantity           int    `json:"quantity" binding:"required"`
	UnitPrice          string `json:"unit_price" binding:"required"`
	PaidAmount         string `json:"paid_amount"`
	PaymentMethod      string `json:"payment_method"`
	PaymentType        string `json:"payment_type"`
	SubscriptionMonths int    `json:"subscription_months"`
	SoldAt             string `json:"sold_at"`
	Note               string `json:"note"`
}

// UpdateSalePaymentRequest 销售单付款信息更新请求
type UpdateSalePaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
	Note          string `json:"note"`
}

// RecordPaymentRequest 收款录入请求
type RecordPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method"`
	Note   string `json:"note"`
	PaidAt string `json:"paid_at"`
}

// GetSales 销售单列表
func (h *Handler) GetSales(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.SaleListFilter{
		Page:          page,
		PageSize:      pageSize,
		ProductID:     parseQueryUint(c, "product_id"),
		PlatformID:    parseQueryUint(c, "platform_id"),
		SubscriberID:  parseQueryUint(c, "subscriber_id"),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		PaymentType:   strings.TrimSpace(c.Query("payment_type")),
		SaleNo:        strings.TrimSpace(c.Query("sale_no")),
		SoldFrom:      parseQueryTime(c, "sold_from"),
		SoldTo:        parseQueryTime(c, "sold_to"),
	}
	sales, total, err := h.SaleService.ListSales(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "销售单查询失败", err)
		return
	}
	response.SuccessWithPage(c, sales, buildPagination(page, pageSize, total))
}

// GetSale 销售单详情（含付款记录）
func (h *Handler) GetSale(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "销售单ID不合法")
		return
	}
	sale, err := h.SaleService.GetSale(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sale)
}

// RecordSale 录入销售单
func (h *Handler) RecordSale(c *gin.Context) {
	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	unitPrice, ok := parseMoneyField(c, req.UnitPrice, "unit_price")
	if !ok {
		return
	}
	paidAmount, ok := parseMoneyField(c, req.PaidAmount, "paid_amount")
	if !ok {
		return
	}
	input := service.RecordSaleInput{
		ProductID:          req.ProductID,
		PlatformID:         req.PlatformID,
		SubscriberID:       req.SubscriberID,
		Quantity:           req.Quantity,
		UnitPrice:          unitPrice,
		PaidAmount:         paidAmount,
		PaymentMethod:      req.PaymentMethod,
		PaymentType:        req.PaymentType,
		SubscriptionMonths: req.SubscriptionMonths,
		Note:               req.Note,
	}
	if soldAt, ok := parseTimeField(c, req.SoldAt, "sold_at"); !ok {
		return
	} else {
		input.SoldAt = soldAt
	}
	sale, err := h.SaleService.RecordSale(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sale)
}

// UpdateSalePayment 更新销售单付款方式与备注
func (h *Handler) UpdateSalePayment(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "销售单ID不合法")
		return
	}
	var req UpdateSalePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	sale, err := h.SaleService.UpdateSalePayment(id, service.UpdateSalePaymentInput{
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sale)
}

// RecordSalePayment 销售单收款
func (h *Handler) RecordSalePayment(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "销售单ID不合法")
		return
	}
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	amount, ok := parseMoneyField(c, req.Amount, "amount")
	if !ok {
		return
	}
	input := service.RecordPaymentInput{
		Amount: amount,
		Method: req.Method,
		Note:   req.Note,
	}
	if paidAt, ok := parseTimeField(c, req.PaidAt, "paid_at"); !ok {
		return
	} else {
		input.PaidAt = paidAt
	}
	sale, err := h.PaymentService.RecordPayment(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sale)
}

// MarkSaleFullyPaid 销售单一次结清
func (h *Handler) MarkSaleFullyPaid(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "销售单ID不合法")
		return
	}
	sale, err := h.PaymentService.MarkFullyPaid(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sale)
}

// ResetSalePayment 销售单收款重置
func (h *Handler) ResetSalePayment(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "销售单ID不合法")
		return
	}
	sale, err := h.PaymentService.ResetToPending(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, sale)
}

// parseTimeField 解析可选时间字段（RFC3339 或 2006-01-02）
func parseTimeField(c *gin.Context, raw, field string) (*time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return &t, true
	}
	respondError(c, response.CodeBadRequest, "时间字段不合法: "+field, nil)
	return nil, false
}
