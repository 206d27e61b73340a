package admin

import (
	"strings"

	"github.com/digistock/internal/http/response"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
)

// PlatformRequest 平台创建/更新请求
type PlatformRequest struct {
	Name                string `json:"name" binding:"required"`
	LowBalanceThreshold string `json:"low_balance_threshold"`
	Note                string `json:"note"`
	IsActive            *bool  `json:"is_active"`
}

// PlatformAddCreditRequest 平台充值请求
type PlatformAddCreditRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Reference string `json:"reference"`
}

// GetPlatforms 平台列表
func (h *Handler) GetPlatforms(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.PlatformListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: c.Query("only_active") == "true",
	}
	platforms, total, err := h.PlatformService.ListPlatforms(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "平台查询失败", err)
		return
	}
	response.SuccessWithPage(c, platforms, buildPagination(page, pageSize, total))
}

// GetPlatform 平台详情
func (h *Handler) GetPlatform(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "平台ID不合法")
		return
	}
	platform, err := h.PlatformService.GetPlatform(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, platform)
}

// GetLowBalancePlatforms 低额度平台列表
func (h *Handler) GetLowBalancePlatforms(c *gin.Context) {
	platforms, err := h.PlatformService.ListLowBalance()
	if err != nil {
		respondError(c, response.CodeInternal, "平台查询失败", err)
		return
	}
	response.Success(c, platforms)
}

// GetCreditMovements 平台额度流水列表
func (h *Handler) GetCreditMovements(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.CreditMovementListFilter{
		Page:       page,
		PageSize:   pageSize,
		PlatformID: parseQueryUint(c, "platform_id"),
		Type:       strings.TrimSpace(c.Query("type")),
	}
	movements, total, err := h.PlatformService.ListCreditMovements(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "额度流水查询失败", err)
		return
	}
	response.SuccessWithPage(c, movements, buildPagination(page, pageSize, total))
}

// CreatePlatform 创建平台
func (h *Handler) CreatePlatform(c *gin.Context) {
	input, ok := bindPlatformInput(c)
	if !ok {
		return
	}
	platform, err := h.PlatformService.CreatePlatform(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, platform)
}

// UpdatePlatform 更新平台
func (h *Handler) UpdatePlatform(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "平台ID不合法")
		return
	}
	input, ok := bindPlatformInput(c)
	if !ok {
		return
	}
	platform, err := h.PlatformService.UpdatePlatform(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, platform)
}

// AddPlatformCredit 平台充值
func (h *Handler) AddPlatformCredit(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "平台ID不合法")
		return
	}
	var req PlatformAddCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	amount, ok := parseMoneyField(c, req.Amount, "amount")
	if !ok {
		return
	}
	platform, movement, err := h.PlatformService.AddCredit(service.AddCreditInput{
		PlatformID: id,
		Amount:     amount,
		Reference:  strings.TrimSpace(req.Reference),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"platform": platform,
		"movement": movement,
	})
}

func bindPlatformInput(c *gin.Context) (service.PlatformInput, bool) {
	var req PlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return service.PlatformInput{}, false
	}
	threshold, ok := parseMoneyField(c, req.LowBalanceThreshold, "low_balance_threshold")
	if !ok {
		return service.PlatformInput{}, false
	}
	return service.PlatformInput{
		Name:                req.Name,
		LowBalanceThreshold: threshold,
		Note:                req.Note,
		IsActive:            req.IsActive,
	}, true
}
