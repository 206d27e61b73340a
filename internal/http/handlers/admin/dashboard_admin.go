package admin

import (
	"strconv"

	"github.com/digistock/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardSummary 经营汇总看板
func (h *Handler) GetDashboardSummary(c *gin.Context) {
	rangeDays, _ := strconv.Atoi(c.DefaultQuery("range_days", "30"))
	summary, err := h.DashboardService.GetSummary(c.Request.Context(), rangeDays)
	if err != nil {
		respondError(c, response.CodeInternal, "看板数据查询失败", err)
		return
	}
	response.Success(c, summary)
}
