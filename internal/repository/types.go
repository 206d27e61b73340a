package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	Category     string
	Search       string
	PlatformID   uint
	OnlyActive   bool
	OnlyLowStock bool
	WithPlatform bool
}

// PlatformListFilter 查询平台列表的过滤条件
type PlatformListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// SubscriberListFilter 查询订阅客户列表的过滤条件
type SubscriberListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// SaleListFilter 查询销售单列表的过滤条件
type SaleListFilter struct {
	Page          int
	PageSize      int
	ProductID     uint
	PlatformID    uint
	SubscriberID  uint
	PaymentStatus string
	PaymentType   string
	SaleNo        string
	SoldFrom      *time.Time
	SoldTo        *time.Time
}

// PurchaseListFilter 查询进货单列表的过滤条件
type PurchaseListFilter struct {
	Page          int
	PageSize      int
	ProductID     uint
	PaymentStatus string
	PurchaseNo    string
	PurchasedFrom *time.Time
	PurchasedTo   *time.Time
}

// StockMovementListFilter 查询库存流水的过滤条件
type StockMovementListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	Type      string
	Reference string
}

// CreditMovementListFilter 查询平台额度流水的过滤条件
type CreditMovementListFilter struct {
	Page       int
	PageSize   int
	PlatformID uint
	Type       string
	Reference  string
}
