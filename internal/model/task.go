package model

import "time"

// 任务优先级，只有三档，存库用字符串方便前端直读
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidPriority 校验优先级取值
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task 是映射数据库表的结构体
// UserID 是归属外键：所有查询必须带上它过滤，不走对象关联
type Task struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `gorm:"type:varchar(16);default:medium" json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName 强制指定表名
func (Task) TableName() string {
	return "tasks"
}
