package models

import "time"

// StockMovement 库存流水表（仅追加，previous/new 必须与变动前后的商品库存一致）
type StockMovement struct {
	ID            uint      `gorm:"primarykey" json:"id"`                              // 主键
	ProductID     uint      `gorm:"not null;index" json:"product_id"`                  // 商品ID
	Type          string    `gorm:"type:varchar(20);index;not null" json:"type"`       // 变动类型（purchase/sale）
	Quantity      int       `gorm:"not null" json:"quantity"`                          // 带符号数量增量
	PreviousStock int       `gorm:"not null" json:"previous_stock"`                    // 变动前库存
	NewStock      int       `gorm:"not null" json:"new_stock"`                         // 变动后库存
	Reference     string    `gorm:"type:varchar(64);index" json:"reference"`           // 触发单号（销售/进货单号）
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                           // 创建时间
}

// TableName 指定表名
func (StockMovement) TableName() string {
	return "stock_movements"
}
