package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/leon37/TodoPilot/internal/model"
	"github.com/leon37/TodoPilot/internal/repository"
)

// 建议的优先级调整动作
const (
	adjustHigher = "higher"
	adjustSame   = "same"
)

// 各优先级的基础耗时估算（分钟）
const (
	estimateHigh   = 60
	estimateMedium = 45
	estimateLow    = 30
)

// dueSoonWindow "即将到期"的判定窗口
const dueSoonWindow = 24 * time.Hour

// SchedulerService 是这里的 "AI"：一组固定规则，没有模型也不调外部接口
// 只读用户的任务集，在内存里算分和排序
type SchedulerService struct {
	repo repository.TaskRepo
}

func NewSchedulerService(repo repository.TaskRepo) *SchedulerService {
	return &SchedulerService{repo: repo}
}

// AnalyzeTasks 跑三个子分析
// now 只取一次快照，保证同一次请求内的紧急度口径一致
func (s *SchedulerService) AnalyzeTasks(ctx context.Context, userID string) (*model.TaskAnalysis, error) {
	tasks, err := s.repo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &model.TaskAnalysis{
		Recommendations: generateRecommendations(tasks, now),
		Priorities:      analyzePriorities(tasks),
		TimeManagement:  analyzeTimeManagement(tasks, now),
		Timestamp:       now,
	}, nil
}

// GenerateDailySchedule 生成排好序的当日日程
func (s *SchedulerService) GenerateDailySchedule(ctx context.Context, userID string) ([]model.ScheduleItem, error) {
	tasks, err := s.repo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildDailySchedule(tasks, time.Now()), nil
}

// ==========================================
// 建议规则表
// ==========================================

// recommendRule 是一条 "条件 → 建议" 规则
// 规则按顺序评估，取第一条命中的，每个任务最多产出一条建议
type recommendRule struct {
	match  func(t *model.Task, now time.Time) bool
	text   func(t *model.Task) string
	adjust string
}

var recommendRules = []recommendRule{
	{
		// 已经逾期
		match: func(t *model.Task, now time.Time) bool {
			return t.DueDate != nil && t.DueDate.Before(now)
		},
		text: func(t *model.Task) string {
			return fmt.Sprintf("Task \"%s\" is overdue. Immediate attention required.", t.Title)
		},
		adjust: adjustHigher,
	},
	{
		// 24 小时内到期（逾期的被上一条拦截了）
		match: func(t *model.Task, now time.Time) bool {
			return t.DueDate != nil && t.DueDate.Before(now.Add(dueSoonWindow))
		},
		text: func(t *model.Task) string {
			return fmt.Sprintf("Task \"%s\" is due soon. Consider working on it now.", t.Title)
		},
		adjust: adjustHigher,
	},
	{
		match: func(t *model.Task, now time.Time) bool {
			return t.Priority == model.PriorityHigh
		},
		text: func(t *model.Task) string {
			return fmt.Sprintf("High priority task \"%s\" detected. Consider moving this up in your queue.", t.Title)
		},
		adjust: adjustSame,
	},
	{
		match: func(t *model.Task, now time.Time) bool {
			return t.Priority == model.PriorityMedium
		},
		text: func(t *model.Task) string {
			return fmt.Sprintf("Consider scheduling \"%s\" for later today or tomorrow.", t.Title)
		},
		adjust: adjustSame,
	},
	{
		// 低优先级兜底
		match: func(t *model.Task, now time.Time) bool {
			return true
		},
		text: func(t *model.Task) string {
			return fmt.Sprintf("\"%s\" is a low priority task. You can defer this if needed.", t.Title)
		},
		adjust: adjustSame,
	},
}

// generateRecommendations 按遍历顺序给每个未完成任务出一条建议
func generateRecommendations(tasks []model.Task, now time.Time) []model.Recommendation {
	recommendations := []model.Recommendation{}

	for i := range tasks {
		t := &tasks[i]
		if t.Completed {
			continue // 完成的任务不分析
		}

		for _, rule := range recommendRules {
			if !rule.match(t, now) {
				continue
			}
			recommendations = append(recommendations, model.Recommendation{
				TaskID:             t.ID,
				Title:              t.Title,
				Recommendation:     rule.text(t),
				PriorityAdjustment: rule.adjust,
			})
			break // 命中即停
		}
	}

	return recommendations
}

// ==========================================
// 优先级分布
// ==========================================

func analyzePriorities(tasks []model.Task) model.PriorityAnalysis {
	counts := map[string]int{
		model.PriorityHigh:   0,
		model.PriorityMedium: 0,
		model.PriorityLow:    0,
	}

	total := 0
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		counts[t.Priority]++
		total++
	}

	if total == 0 {
		return model.PriorityAnalysis{
			TaskCounts:           counts,
			PriorityBalanceScore: 100,
			Suggestions:          []string{"No active tasks to analyze"},
		}
	}

	// 理想状态是三档均分，偏差越大分越低
	// 偏差上限是 2×total（全部挤在一档时达到），用它归一化到 0-100
	ideal := float64(total) / 3
	deviation := math.Abs(float64(counts[model.PriorityHigh])-ideal) +
		math.Abs(float64(counts[model.PriorityMedium])-ideal) +
		math.Abs(float64(counts[model.PriorityLow])-ideal)
	maxDeviation := float64(total) * 2
	score := math.Max(0, 100-deviation/maxDeviation*100)

	suggestions := []string{}
	if float64(counts[model.PriorityHigh]) > float64(total)*0.5 {
		suggestions = append(suggestions, "You have too many high-priority tasks. Consider delegating or postponing some.")
	} else if counts[model.PriorityHigh] == 0 && counts[model.PriorityMedium] > 0 {
		suggestions = append(suggestions, "Consider elevating some medium-priority tasks to high priority.")
	}

	return model.PriorityAnalysis{
		TaskCounts:           counts,
		PriorityBalanceScore: round2(score),
		Suggestions:          suggestions,
	}
}

// ==========================================
// 时间效率
// ==========================================

func analyzeTimeManagement(tasks []model.Task, now time.Time) model.TimeAnalysis {
	var active []model.Task
	for _, t := range tasks {
		if !t.Completed {
			active = append(active, t)
		}
	}

	if len(active) == 0 {
		return model.TimeAnalysis{
			TimeEfficiencyScore:     100,
			Suggestions:             []string{"No active tasks to analyze"},
			EstimatedCompletionTime: 0,
		}
	}

	overdue, urgent := 0, 0
	for _, t := range active {
		if t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(now) {
			overdue++
		} else if t.DueDate.Before(now.Add(dueSoonWindow)) {
			urgent++
		}
	}

	// 基础分 100，逾期扣得狠，紧急扣得轻
	total := float64(len(active))
	score := 100 - float64(overdue)/total*50 - float64(urgent)/total*20
	score = math.Max(0, score)

	suggestions := []string{}
	if overdue > 0 {
		suggestions = append(suggestions, fmt.Sprintf("You have %d overdue task(s). Address these immediately.", overdue))
	}
	if float64(urgent) > total*0.5 {
		suggestions = append(suggestions, "More than half of your tasks are urgent. Consider better planning.")
	}

	estimated := 0
	for _, t := range active {
		estimated += baseEstimate(t.Priority)
	}

	return model.TimeAnalysis{
		TimeEfficiencyScore:     round2(score),
		Suggestions:             suggestions,
		EstimatedCompletionTime: estimated,
	}
}

// ==========================================
// 日程排序
// ==========================================

// buildDailySchedule 对未完成任务排序：
// 24 小时内到期的（含已逾期）排最前，然后按优先级 high > medium > low，
// 最后按创建时间，越早创建越靠前
func buildDailySchedule(tasks []model.Task, now time.Time) []model.ScheduleItem {
	var pending []model.Task
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}

	urgent := func(t *model.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(now.Add(dueSoonWindow))
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := &pending[i], &pending[j]
		if ua, ub := urgent(a), urgent(b); ua != ub {
			return ua
		}
		if wa, wb := priorityWeight(a.Priority), priorityWeight(b.Priority); wa != wb {
			return wa > wb
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	schedule := []model.ScheduleItem{}
	for i := range pending {
		t := &pending[i]
		schedule = append(schedule, model.ScheduleItem{
			ID:            t.ID,
			Title:         t.Title,
			Priority:      t.Priority,
			EstimatedTime: estimateTaskTime(t),
			DueDate:       t.DueDate,
		})
	}
	return schedule
}

func priorityWeight(p string) int {
	switch p {
	case model.PriorityHigh:
		return 3
	case model.PriorityMedium:
		return 2
	default:
		return 1
	}
}

func baseEstimate(p string) int {
	switch p {
	case model.PriorityHigh:
		return estimateHigh
	case model.PriorityMedium:
		return estimateMedium
	default:
		return estimateLow
	}
}

// estimateTaskTime 单任务耗时估算
// 标题和描述特别长的，当作更复杂的任务加一点时间
func estimateTaskTime(t *model.Task) int {
	estimate := baseEstimate(t.Priority)
	if len(t.Title) > 50 {
		estimate += 15
	}
	if len(t.Description) > 100 {
		estimate += 20
	}
	return estimate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
