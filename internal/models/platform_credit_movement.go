package models

import "time"

// PlatformCreditMovement 平台额度流水表（仅追加，new_balance 任何时刻不允许为负）
type PlatformCreditMovement struct {
	ID              uint      `gorm:"primarykey" json:"id"`                          // 主键
	PlatformID      uint      `gorm:"not null;index" json:"platform_id"`             // 平台ID
	Type            string    `gorm:"type:varchar(20);index;not null" json:"type"`   // 变动类型（credit_added/sale_deduction）
	Amount          Money     `gorm:"type:decimal(20,2);not null" json:"amount"`     // 带符号变动金额
	PreviousBalance Money     `gorm:"type:decimal(20,2);not null" json:"previous_balance"` // 变动前余额
	NewBalance      Money     `gorm:"type:decimal(20,2);not null" json:"new_balance"`      // 变动后余额
	Reference       string    `gorm:"type:varchar(64);index" json:"reference"`       // 触发单号
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (PlatformCreditMovement) TableName() string {
	return "platform_credit_movements"
}
