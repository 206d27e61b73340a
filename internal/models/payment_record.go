package models

import "time"

// PaymentRecord 销售付款记录表（分期付款流水，属于且仅属于一个销售单）
type PaymentRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	SaleID    uint      `gorm:"not null;index" json:"sale_id"`                       // 销售单ID
	Amount    Money     `gorm:"type:decimal(20,2);not null" json:"amount"`           // 付款金额（>0）
	Method    string    `gorm:"type:varchar(50)" json:"method,omitempty"`            // 付款方式
	Note      string    `gorm:"type:varchar(500)" json:"note,omitempty"`             // 备注
	PaidAt    time.Time `gorm:"index;not null" json:"paid_at"`                       // 付款时间
	CreatedAt time.Time `gorm:"index" json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (PaymentRecord) TableName() string {
	return "payment_records"
}
