package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 数字商品表
type Product struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                               // 主键
	Name                 string         `gorm:"type:varchar(200);not null;index" json:"name"`                       // 商品名称
	Category             string         `gorm:"type:varchar(100);index" json:"category"`                            // 分类
	CurrentStock         int            `gorm:"not null;default:0" json:"current_stock"`                            // 当前库存（仅由库存流水引擎变更）
	MinStockAlert        int            `gorm:"not null;default:0" json:"min_stock_alert"`                          // 低库存预警阈值
	AveragePurchasePrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"average_purchase_price"` // 加权平均进货价
	SuggestedSellPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"suggested_sell_price"`  // 建议售价
	PlatformID           *uint          `gorm:"index" json:"platform_id,omitempty"`                                 // 归属平台ID（可选）
	PlatformBuyingPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"platform_buying_price"` // 平台进货单价
	IsActive             bool           `gorm:"default:true;index" json:"is_active"`                                // 是否上架
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt            time.Time      `json:"updated_at"`                                                         // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                                     // 软删除时间

	// 关联
	Platform *Platform `gorm:"foreignKey:PlatformID" json:"platform,omitempty"` // 归属平台
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
