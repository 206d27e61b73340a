package repository

import (
	"time"

	"github.com/digistock/internal/constants"
	"github.com/digistock/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error)
	GetStockStats() (DashboardStockStatsRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	SalesTotal          int64
	SalesRevenue        float64
	SalesProfit         float64
	SalesOutstanding    float64
	PurchasesTotal      int64
	PurchasesCost       float64
	ActiveSubscriptions int64
}

// DashboardStockStatsRow 库存与平台额度统计
type DashboardStockStatsRow struct {
	ActiveProducts      int64
	OutOfStockProducts  int64
	LowStockProducts    int64
	LowBalancePlatforms int64
}

// DashboardProductRankingRow 商品销售排行原始行
type DashboardProductRankingRow struct {
	ProductID uint
	Name      string
	Sales     int64
	Quantity  int64
	Revenue   float64
	Profit    float64
}

// GormDashboardRepository GORM 仪表盘仓储实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓储
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 统计区间内销售/进货总览
func (r *GormDashboardRepository) GetOverview(startAt, endAt time.Time) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	type saleAgg struct {
		Total       int64
		Revenue     float64
		Profit      float64
		Outstanding float64
	}
	var sales saleAgg
	if err := r.db.Model(&models.StockSale{}).
		Select("COUNT(*) AS total, COALESCE(SUM(total_price),0) AS revenue, COALESCE(SUM(profit),0) AS profit, COALESCE(SUM(remaining_amount),0) AS outstanding").
		Where("sold_at >= ? AND sold_at <= ?", startAt, endAt).
		Scan(&sales).Error; err != nil {
		return row, err
	}
	row.SalesTotal = sales.Total
	row.SalesRevenue = sales.Revenue
	row.SalesProfit = sales.Profit
	row.SalesOutstanding = sales.Outstanding

	type purchaseAgg struct {
		Total int64
		Cost  float64
	}
	var purchases purchaseAgg
	if err := r.db.Model(&models.StockPurchase{}).
		Select("COUNT(*) AS total, COALESCE(SUM(total_cost),0) AS cost").
		Where("purchased_at >= ? AND purchased_at <= ?", startAt, endAt).
		Scan(&purchases).Error; err != nil {
		return row, err
	}
	row.PurchasesTotal = purchases.Total
	row.PurchasesCost = purchases.Cost

	if err := r.db.Model(&models.StockSale{}).
		Where("payment_type = ? AND subscription_status = ?",
			constants.PaymentTypeRecurring, constants.SubscriptionStatusActive).
		Count(&row.ActiveSubscriptions).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetStockStats 统计库存与平台额度健康度
func (r *GormDashboardRepository) GetStockStats() (DashboardStockStatsRow, error) {
	var row DashboardStockStatsRow
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&row.ActiveProducts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND current_stock = 0", true).
		Count(&row.OutOfStockProducts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_active = ? AND min_stock_alert > 0 AND current_stock > 0 AND current_stock <= min_stock_alert", true).
		Count(&row.LowStockProducts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Platform{}).
		Where("is_active = ? AND low_balance_threshold > 0 AND credit_balance <= low_balance_threshold", true).
		Count(&row.LowBalancePlatforms).Error; err != nil {
		return row, err
	}
	return row, nil
}

// GetTopProducts 统计区间内销量靠前的商品
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]DashboardProductRankingRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []DashboardProductRankingRow
	if err := r.db.Model(&models.StockSale{}).
		Select("stock_sales.product_id AS product_id, products.name AS name, COUNT(*) AS sales, COALESCE(SUM(stock_sales.quantity),0) AS quantity, COALESCE(SUM(stock_sales.total_price),0) AS revenue, COALESCE(SUM(stock_sales.profit),0) AS profit").
		Joins("JOIN products ON products.id = stock_sales.product_id").
		Where("stock_sales.sold_at >= ? AND stock_sales.sold_at <= ?", startAt, endAt).
		Group("stock_sales.product_id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
