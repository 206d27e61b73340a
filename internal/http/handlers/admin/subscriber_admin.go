package admin

import (
	"strings"

	"github.com/digistock/internal/http/response"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscriberRequest 订阅客户创建/更新请求
type SubscriberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Note     string `json:"note"`
	IsActive *bool  `json:"is_active"`
}

// GetSubscribers 订阅客户列表
func (h *Handler) GetSubscribers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.SubscriberListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: c.Query("only_active") == "true",
	}
	subscribers, total, err := h.SubscriberService.ListSubscribers(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "订阅客户查询失败", err)
		return
	}
	response.SuccessWithPage(c, subscribers, buildPagination(page, pageSize, total))
}

// GetSubscriber 订阅客户详情
func (h *Handler) GetSubscriber(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "订阅客户ID不合法")
		return
	}
	subscriber, err := h.SubscriberService.GetSubscriber(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, subscriber)
}

// CreateSubscriber 创建订阅客户
func (h *Handler) CreateSubscriber(c *gin.Context) {
	var req SubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	subscriber, err := h.SubscriberService.CreateSubscriber(service.SubscriberInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Note:     req.Note,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, subscriber)
}

// UpdateSubscriber 更新订阅客户
func (h *Handler) UpdateSubscriber(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "订阅客户ID不合法")
		return
	}
	var req SubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}
	subscriber, err := h.SubscriberService.UpdateSubscriber(id, service.SubscriberInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Note:     req.Note,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, subscriber)
}

// DeleteSubscriber 删除订阅客户
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	id, ok := parsePathUint(c, "id")
	if !ok {
		response.BadRequest(c, "订阅客户ID不合法")
		return
	}
	if err := h.SubscriberService.DeleteSubscriber(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithMsg(c, "订阅客户已删除", nil)
}
