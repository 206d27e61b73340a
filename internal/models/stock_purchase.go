package models

import (
	"time"

	"gorm.io/gorm"
)

// StockPurchase 进货单表（创建后仅付款字段可修改）
type StockPurchase struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                    // 主键
	PurchaseNo    string         `gorm:"uniqueIndex;not null" json:"purchase_no"`                 // 进货单号
	ProductID     uint           `gorm:"not null;index" json:"product_id"`                        // 商品ID
	Quantity      int            `gorm:"not null" json:"quantity"`                                // 进货数量
	UnitCost      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_cost"`  // 进货单价
	TotalCost     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // 进货总价
	PaymentStatus string         `gorm:"type:varchar(20);index;not null" json:"payment_status"`   // 付款状态
	PaymentMethod string         `gorm:"type:varchar(50)" json:"payment_method,omitempty"`        // 付款方式
	Note          string         `gorm:"type:varchar(500)" json:"note,omitempty"`                 // 备注
	PurchasedAt   time.Time      `gorm:"index;not null" json:"purchased_at"`                      // 进货时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	// 关联
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (StockPurchase) TableName() string {
	return "stock_purchases"
}
