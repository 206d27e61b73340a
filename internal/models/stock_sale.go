package models

import (
	"time"

	"gorm.io/gorm"
)

// StockSale 销售单表
type StockSale struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                               // 主键
	SaleNo              string         `gorm:"uniqueIndex;not null" json:"sale_no"`                                // 销售单号
	ProductID           uint           `gorm:"not null;index" json:"product_id"`                                   // 商品ID
	PlatformID          *uint          `gorm:"index" json:"platform_id,omitempty"`                                 // 平台ID（可选）
	SubscriberID        *uint          `gorm:"index" json:"subscriber_id,omitempty"`                               // 订阅客户ID（可选）
	Quantity            int            `gorm:"not null" json:"quantity"`                                           // 销售数量
	UnitPrice           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`            // 销售单价
	TotalPrice          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`           // 销售总价
	PlatformBuyingPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"platform_buying_price"` // 平台进货单价快照
	CostPrice           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cost_price"`            // 成本总价
	Profit              Money          `gorm:"type:decimal(20,2);not null;default:0" json:"profit"`                // 利润
	PaymentStatus       string         `gorm:"type:varchar(20);index;not null" json:"payment_status"`              // 付款状态（pending/partial/paid）
	PaidAmount          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"paid_amount"`           // 已付金额
	RemainingAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"remaining_amount"`      // 剩余应付金额
	PaymentMethod       string         `gorm:"type:varchar(50)" json:"payment_method,omitempty"`                   // 付款方式
	PaymentType         string         `gorm:"type:varchar(20);index;not null" json:"payment_type"`                // 付款类型（one_time/recurring）
	SubscriptionMonths  int            `gorm:"not null;default:0" json:"subscription_months,omitempty"`            // 订阅时长（月）
	SubscriptionStartsAt *time.Time    `json:"subscription_starts_at,omitempty"`                                   // 订阅开始时间
	SubscriptionEndsAt  *time.Time     `gorm:"index" json:"subscription_ends_at,omitempty"`                        // 订阅结束时间
	SubscriptionStatus  string         `gorm:"type:varchar(20);index;not null;default:'none'" json:"subscription_status"` // 订阅状态
	Note                string         `gorm:"type:varchar(500)" json:"note,omitempty"`                            // 备注
	SoldAt              time.Time      `gorm:"index;not null" json:"sold_at"`                                      // 销售时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt           time.Time      `json:"updated_at"`                                                         // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                     // 软删除时间

	// 关联
	Product        *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`       // 商品信息
	Platform       *Platform       `gorm:"foreignKey:PlatformID" json:"platform,omitempty"`     // 平台信息
	Subscriber     *Subscriber     `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"` // 订阅客户
	PaymentRecords []PaymentRecord `gorm:"foreignKey:SaleID" json:"payment_records,omitempty"`  // 付款记录
}

// TableName 指定表名
func (StockSale) TableName() string {
	return "stock_sales"
}
