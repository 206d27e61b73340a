package admin

import (
	"strings"

	"github.com/digistock/internal/http/response"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
)

// RecordPurchaseRequest 进货录入请求
type RecordPurchaseRequest struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
	UnitCost      string `json:"unit_cost" binding:"required"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`
	PurchasedAt   string `json:"purchased_at"`
	Note          string `json:"note"`
}

// UpdatePurchasePaymentRequest 进货单付款信息更新请求
type UpdatePurchasePaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`
	Note          string `json:"note"`
}

// GetPurchases 进货单列表
func (h *Handler) GetPurchases(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.PurchaseListFilter{
		Page:          page,
		PageSize:      pageSize,
		ProductID:     parseQueryUint(c, "product_id"),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		PurchaseNo:    strings.TrimSpace(c.Query("purchase_no")),
		PurchasedFrom: parseQueryTime(c, "purchased_from"),
		PurchasedTo:   parseQueryTime(c, "purchased_to"),
	}
	purchases, total, err := h.PurchaseService.ListPurchases(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "进货单查询失败", err)
		return
	}
	response.SuccessWithPage(c, purchases, buildPagination(page, pageSize, total))
}

// GetPurchase 进货单详情
func (h *Handler) GetPurchase(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "进货单ID不合法")
		return
	}
	purchase, err := h.PurchaseService.GetPurchase(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, purchase)
}

// RecordPurchase 录入进货单
func (h *Handler) RecordPurchase(c *gin.Context) {
	var req RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	unitCost, ok := parseMoneyField(c, req.UnitCost, "unit_cost")
	if !ok {
		return
	}
	input := service.RecordPurchaseInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitCost:      unitCost,
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	}
	if purchasedAt, ok := parseTimeField(c, req.PurchasedAt, "purchased_at"); !ok {
		return
	} else {
		input.PurchasedAt = purchasedAt
	}
	purchase, err := h.PurchaseService.RecordPurchase(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, purchase)
}

// UpdatePurchasePayment 更新进货单付款信息
func (h *Handler) UpdatePurchasePayment(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "进货单ID不合法")
		return
	}
	var req UpdatePurchasePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	purchase, err := h.PurchaseService.UpdatePurchasePayment(id, service.UpdatePurchasePaymentInput{
		PaymentStatus: req.PaymentStatus,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, purchase)
}
