package admin

import (
	"errors"

	"github.com/digistock/internal/http/response"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	requestID := ""
	if c != nil {
		if value, ok := c.Get("request_id"); ok {
			if id, ok := value.(string); ok {
				requestID = id
			}
		}
	}
	return logger.SW("request_id", requestID, "path", c.FullPath(), "method", c.Request.Method)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		appErr := response.WrapError(code, msg, err)
		requestLog(c).Warnw("request_failed", "code", code, "error", appErr.Error())
	}
	response.Error(c, code, msg)
}

// respondServiceError 将业务错误映射为统一响应。
// 库存/额度不足属于可预期的业务拒绝，随响应携带明细数据。
func respondServiceError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		response.ErrorWithData(c, response.CodeConflict, stockErr.Error(), gin.H{
			"product_id": stockErr.ProductID,
			"product":    stockErr.Product,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		})
		return
	}
	var creditErr *service.InsufficientCreditError
	if errors.As(err, &creditErr) {
		response.ErrorWithData(c, response.CodeConflict, creditErr.Error(), gin.H{
			"platform_id": creditErr.PlatformID,
			"platform":    creditErr.Platform,
			"balance":     creditErr.Balance.StringFixed(2),
			"required":    creditErr.Required.StringFixed(2),
			"shortfall":   creditErr.Shortfall().StringFixed(2),
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidPaymentAmount):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrPlatformNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrPurchaseNotFound),
		errors.Is(err, service.ErrSubscriberNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrProductInactive),
		errors.Is(err, service.ErrPlatformInactive),
		errors.Is(err, service.ErrProductInUse):
		response.Error(c, response.CodeConflict, err.Error())
	default:
		respondError(c, response.CodeInternal, "服务器内部错误", err)
	}
}
