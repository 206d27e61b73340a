package service

import (
	"context"
	"fmt"
	"time"

	"github.com/digistock/internal/cache"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/repository"
)

// DashboardService 仪表盘服务：聚合统计加短时缓存
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	cacheTTL      time.Duration
	now           func() time.Time
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(dashboardRepo repository.DashboardRepository, cacheTTLSeconds int) *DashboardService {
	ttl := time.Duration(cacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cacheTTL:      ttl,
		now:           time.Now,
	}
}

// DashboardSummary 仪表盘汇总结果
type DashboardSummary struct {
	RangeDays           int                                     `json:"range_days"`
	StartAt             time.Time                               `json:"start_at"`
	EndAt               time.Time                               `json:"end_at"`
	SalesTotal          int64                                   `json:"sales_total"`
	SalesRevenue        float64                                 `json:"sales_revenue"`
	SalesProfit         float64                                 `json:"sales_profit"`
	SalesOutstanding    float64                                 `json:"sales_outstanding"`
	PurchasesTotal      int64                                   `json:"purchases_total"`
	PurchasesCost       float64                                 `json:"purchases_cost"`
	ActiveSubscriptions int64                                   `json:"active_subscriptions"`
	ActiveProducts      int64                                   `json:"active_products"`
	OutOfStockProducts  int64                                   `json:"out_of_stock_products"`
	LowStockProducts    int64                                   `json:"low_stock_products"`
	LowBalancePlatforms int64                                   `json:"low_balance_platforms"`
	TopProducts         []repository.DashboardProductRankingRow `json:"top_products"`
}

// GetSummary 返回近 rangeDays 天的经营汇总。
// 统计结果做短时缓存，缓存异常只记日志不阻断查询。
func (s *DashboardService) GetSummary(ctx context.Context, rangeDays int) (*DashboardSummary, error) {
	if rangeDays <= 0 {
		rangeDays = 30
	}
	cacheKey := fmt.Sprintf("dashboard:summary:%d", rangeDays)

	var cached DashboardSummary
	hit, err := cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warnw("dashboard_cache_read_failed", "key", cacheKey, "error", err)
	}
	if hit {
		return &cached, nil
	}

	endAt := s.now()
	startAt := endAt.AddDate(0, 0, -rangeDays)

	overview, err := s.dashboardRepo.GetOverview(startAt, endAt)
	if err != nil {
		return nil, err
	}
	stock, err := s.dashboardRepo.GetStockStats()
	if err != nil {
		return nil, err
	}
	topProducts, err := s.dashboardRepo.GetTopProducts(startAt, endAt, 5)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		RangeDays:           rangeDays,
		StartAt:             startAt,
		EndAt:               endAt,
		SalesTotal:          overview.SalesTotal,
		SalesRevenue:        overview.SalesRevenue,
		SalesProfit:         overview.SalesProfit,
		SalesOutstanding:    overview.SalesOutstanding,
		PurchasesTotal:      overview.PurchasesTotal,
		PurchasesCost:       overview.PurchasesCost,
		ActiveSubscriptions: overview.ActiveSubscriptions,
		ActiveProducts:      stock.ActiveProducts,
		OutOfStockProducts:  stock.OutOfStockProducts,
		LowStockProducts:    stock.LowStockProducts,
		LowBalancePlatforms: stock.LowBalancePlatforms,
		TopProducts:         topProducts,
	}
	if summary.TopProducts == nil {
		summary.TopProducts = []repository.DashboardProductRankingRow{}
	}

	if err := cache.SetJSON(ctx, cacheKey, summary, s.cacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "key", cacheKey, "error", err)
	}
	return summary, nil
}
