package model

import "time"

// TaskAnalysis 是 AI 分析接口的完整返回结构
// 三个子分析互相独立，共用同一个 "now" 快照计算
type TaskAnalysis struct {
	Recommendations []Recommendation `json:"aiRecommendations"`
	Priorities      PriorityAnalysis `json:"priorityAdjustments"`
	TimeManagement  TimeAnalysis     `json:"timeManagement"`
	Timestamp       time.Time        `json:"timestamp"`
}

// Recommendation 单条任务建议
// PriorityAdjustment 只有两种取值："higher" 和 "same"
type Recommendation struct {
	TaskID             string `json:"taskId"`
	Title              string `json:"title"`
	Recommendation     string `json:"recommendation"`
	PriorityAdjustment string `json:"priorityAdjustment"`
}

// PriorityAnalysis 优先级分布分析
type PriorityAnalysis struct {
	TaskCounts           map[string]int `json:"taskCounts"`
	PriorityBalanceScore float64        `json:"priorityBalanceScore"` // 0-100，越高分布越均匀
	Suggestions          []string       `json:"suggestions"`
}

// TimeAnalysis 时间效率分析
type TimeAnalysis struct {
	TimeEfficiencyScore     float64  `json:"timeEfficiencyScore"` // 0-100，逾期/紧急任务越多越低
	Suggestions             []string `json:"suggestions"`
	EstimatedCompletionTime int      `json:"estimatedCompletionTime"` // 剩余工作量估算（分钟）
}

// ScheduleItem 日程表里的单个条目，按紧急度和优先级排好序
type ScheduleItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Priority      string     `json:"priority"`
	EstimatedTime int        `json:"estimatedTime"` // 预估耗时（分钟）
	DueDate       *time.Time `json:"dueDate"`
}
