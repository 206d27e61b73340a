package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscriber 订阅客户表
type Subscriber struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`  // 客户姓名
	Email     string         `gorm:"type:varchar(200);index" json:"email"`    // 邮箱
	Phone     string         `gorm:"type:varchar(50)" json:"phone,omitempty"` // 电话
	Note      string         `gorm:"type:varchar(500)" json:"note,omitempty"` // 备注
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`     // 是否有效
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Subscriber) TableName() string {
	return "subscribers"
}
