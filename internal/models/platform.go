package models

import (
	"time"

	"gorm.io/gorm"
)

// Platform 平台账户表（预付额度，销售时扣减）
type Platform struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Name                string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`            // 平台名称
	CreditBalance       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"credit_balance"`   // 剩余额度（不允许为负）
	LowBalanceThreshold Money          `gorm:"type:decimal(20,2);not null;default:0" json:"low_balance_threshold"` // 低额度预警阈值
	Note                string         `gorm:"type:varchar(500)" json:"note,omitempty"`                       // 备注
	IsActive            bool           `gorm:"default:true;index" json:"is_active"`                           // 是否启用
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt           time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Platform) TableName() string {
	return "platforms"
}
