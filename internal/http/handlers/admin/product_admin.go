package admin

import (
	"strings"

	"github.com/digistock/internal/http/response"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name                string `json:"name" binding:"required"`
	Category            string `json:"category"`
	MinStockAlert       int    `json:"min_stock_alert"`
	SuggestedSellPrice  string `json:"suggested_sell_price"`
	PlatformID          uint   `json:"platform_id"`
	PlatformBuyingPrice string `json:"platform_buying_price"`
	IsActive            *bool  `json:"is_active"`
}

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		Category:   strings.TrimSpace(c.Query("category")),
		PlatformID: parseQueryUint(c, "platform_id"),
		OnlyActive: c.Query("only_active") == "true",
	}
	products, total, err := h.ProductService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "商品查询失败", err)
		return
	}
	response.SuccessWithPage(c, products, buildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "商品ID不合法")
		return
	}
	product, err := h.ProductService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// GetLowStockProducts 低库存商品列表
func (h *Handler) GetLowStockProducts(c *gin.Context) {
	products, err := h.ProductService.ListLowStock()
	if err != nil {
		respondError(c, response.CodeInternal, "商品查询失败", err)
		return
	}
	response.Success(c, products)
}

// GetStockMovements 库存流水列表
func (h *Handler) GetStockMovements(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.StockMovementListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: parseQueryUint(c, "product_id"),
		Type:      strings.TrimSpace(c.Query("type")),
	}
	movements, total, err := h.ProductService.ListStockMovements(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "库存流水查询失败", err)
		return
	}
	response.SuccessWithPage(c, movements, buildPagination(page, pageSize, total))
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	input, ok := bindProductInput(c)
	if !ok {
		return
	}
	product, err := h.ProductService.CreateProduct(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "商品ID不合法")
		return
	}
	input, ok := bindProductInput(c)
	if !ok {
		return
	}
	product, err := h.ProductService.UpdateProduct(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "商品ID不合法")
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "商品已删除", nil)
}

func bindProductInput(c *gin.Context) (service.ProductInput, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return service.ProductInput{}, false
	}
	sellPrice, ok := parseMoneyField(c, req.SuggestedSellPrice, "suggested_sell_price")
	if !ok {
		return service.ProductInput{}, false
	}
	buyingPrice, ok := parseMoneyField(c, req.PlatformBuyingPrice, "platform_buying_price")
	if !ok {
		return service.ProductInput{}, false
	}
	return service.ProductInput{
		Name:                req.Name,
		Category:            req.Category,
		MinStockAlert:       req.MinStockAlert,
		SuggestedSellPrice:  sellPrice,
		PlatformID:          req.PlatformID,
		PlatformBuyingPrice: buyingPrice,
		IsActive:            req.IsActive,
	}, true
}

// parseMoneyField 解析金额字段，空串视为 0
func parseMoneyField(c *gin.Context, raw, field string) (models.Money, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.ZeroMoney(), true
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		respondError(c, response.CodeBadRequest, "金额字段不合法: "+field, err)
		return models.Money{}, false
	}
	return models.NewMoneyFromDecimal(amount), true
}
