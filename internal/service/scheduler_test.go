package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leon37/TodoPilot/internal/model"
)

func due(t time.Time) *time.Time {
	return &t
}

func newTask(id, title, priority string, completed bool, dueDate *time.Time, createdAt time.Time) model.Task {
	return model.Task{
		ID:        id,
		UserID:    "U1",
		Title:     title,
		Priority:  priority,
		Completed: completed,
		DueDate:   dueDate,
		CreatedAt: createdAt,
	}
}

// ==========================================
// 建议规则
// ==========================================

func TestRecommendationsRuleOrder(t *testing.T) {
	now := time.Now()

	tasks := []model.Task{
		newTask("t1", "overdue high", model.PriorityHigh, false, due(now.Add(-time.Hour)), now),
		newTask("t2", "due soon low", model.PriorityLow, false, due(now.Add(2*time.Hour)), now),
		newTask("t3", "plain high", model.PriorityHigh, false, nil, now),
		newTask("t4", "plain medium", model.PriorityMedium, false, nil, now),
		newTask("t5", "plain low", model.PriorityLow, false, nil, now),
		newTask("t6", "done", model.PriorityHigh, true, due(now.Add(-time.Hour)), now),
	}

	recs := generateRecommendations(tasks, now)
	require.Len(t, recs, 5) // 完成的 t6 被跳过

	// 逾期规则优先，调整方向是 higher
	assert.Equal(t, "t1", recs[0].TaskID)
	assert.Contains(t, recs[0].Recommendation, "is overdue")
	assert.Equal(t, "higher", recs[0].PriorityAdjustment)

	// 24 小时内到期，低优先级也是 higher
	assert.Equal(t, "t2", recs[1].TaskID)
	assert.Contains(t, recs[1].Recommendation, "is due soon")
	assert.Equal(t, "higher", recs[1].PriorityAdjustment)

	// 没有截止时间的按优先级走，调整方向都是 same
	assert.Contains(t, recs[2].Recommendation, "High priority task")
	assert.Equal(t, "same", recs[2].PriorityAdjustment)
	assert.Contains(t, recs[3].Recommendation, "Consider scheduling")
	assert.Equal(t, "same", recs[3].PriorityAdjustment)
	assert.Contains(t, recs[4].Recommendation, "low priority task")
	assert.Equal(t, "same", recs[4].PriorityAdjustment)
}

func TestRecommendationsFarFutureDueFallsToPriority(t *testing.T) {
	now := time.Now()

	// 十天后才到期：既不逾期也不紧急，落到优先级规则
	tasks := []model.Task{
		newTask("t1", "relaxed high", model.PriorityHigh, false, due(now.Add(240*time.Hour)), now),
	}

	recs := generateRecommendations(tasks, now)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Recommendation, "High priority task")
	assert.Equal(t, "same", recs[0].PriorityAdjustment)
}

func TestRecommendationsEveryIncompleteOverdueIsHigher(t *testing.T) {
	now := time.Now()

	tasks := []model.Task{
		newTask("t1", "a", model.PriorityHigh, false, due(now.Add(-time.Minute)), now),
		newTask("t2", "b", model.PriorityMedium, false, due(now.Add(-48*time.Hour)), now),
		newTask("t3", "c", model.PriorityLow, false, due(now.Add(-time.Second)), now),
	}

	for _, rec := range generateRecommendations(tasks, now) {
		assert.Contains(t, rec.Recommendation, "Immediate attention required")
		assert.Equal(t, "higher", rec.PriorityAdjustment)
	}
}

// ==========================================
// 优先级分布
// ==========================================

func TestPriorityBalanceNoActiveTasks(t *testing.T) {
	got := analyzePriorities(nil)

	assert.Equal(t, float64(100), got.PriorityBalanceScore)
	assert.Equal(t, []string{"No active tasks to analyze"}, got.Suggestions)
	assert.Equal(t, map[string]int{"high": 0, "medium": 0, "low": 0}, got.TaskCounts)

	// 全部已完成等价于没有活跃任务
	now := time.Now()
	got = analyzePriorities([]model.Task{
		newTask("t1", "done", model.PriorityHigh, true, nil, now),
	})
	assert.Equal(t, float64(100), got.PriorityBalanceScore)
}

func TestPriorityBalancePerfectSplit(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		newTask("t1", "a", model.PriorityHigh, false, nil, now),
		newTask("t2", "b", model.PriorityMedium, false, nil, now),
		newTask("t3", "c", model.PriorityLow, false, nil, now),
	}

	got := analyzePriorities(tasks)
	assert.Equal(t, float64(100), got.PriorityBalanceScore) // 偏差为 0
	assert.Empty(t, got.Suggestions)
	assert.Equal(t, 1, got.TaskCounts["high"])
	assert.Equal(t, 1, got.TaskCounts["medium"])
	assert.Equal(t, 1, got.TaskCounts["low"])
}

func TestPriorityBalanceAllHigh(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		newTask("t1", "a", model.PriorityHigh, false, nil, now),
		newTask("t2", "b", model.PriorityHigh, false, nil, now),
		newTask("t3", "c", model.PriorityHigh, false, nil, now),
	}

	got := analyzePriorities(tasks)
	// ideal = 1，偏差 = 2+1+1 = 4，上限 = 6 → 100 - 66.67 = 33.33
	assert.InDelta(t, 33.33, got.PriorityBalanceScore, 0.001)
	require.Len(t, got.Suggestions, 1)
	assert.Contains(t, got.Suggestions[0], "too many high-priority")
}

func TestPriorityBalancePromoteSuggestion(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		newTask("t1", "a", model.PriorityMedium, false, nil, now),
		newTask("t2", "b", model.PriorityMedium, false, nil, now),
	}

	got := analyzePriorities(tasks)
	require.Len(t, got.Suggestions, 1)
	assert.Contains(t, got.Suggestions[0], "elevating some medium-priority")
}

// ==========================================
// 时间效率
// ==========================================

func TestTimeManagementNoActiveTasks(t *testing.T) {
	got := analyzeTimeManagement(nil, time.Now())

	assert.Equal(t, float64(100), got.TimeEfficiencyScore)
	assert.Equal(t, []string{"No active tasks to analyze"}, got.Suggestions)
	assert.Equal(t, 0, got.EstimatedCompletionTime)
}

func TestTimeManagementScore(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		newTask("t1", "overdue", model.PriorityHigh, false, due(now.Add(-time.Hour)), now),
		newTask("t2", "urgent", model.PriorityMedium, false, due(now.Add(3*time.Hour)), now),
		newTask("t3", "later", model.PriorityLow, false, due(now.Add(72*time.Hour)), now),
		newTask("t4", "no due", model.PriorityLow, false, nil, now),
	}

	got := analyzeTimeManagement(tasks, now)
	// 4 个活跃任务：1 逾期扣 50×0.25，1 紧急扣 20×0.25 → 82.5
	assert.InDelta(t, 82.5, got.TimeEfficiencyScore, 0.001)
	// 60 + 45 + 30 + 30
	assert.Equal(t, 165, got.EstimatedCompletionTime)
	require.Len(t, got.Suggestions, 1)
	assert.Contains(t, got.Suggestions[0], "1 overdue task(s)")
}

func TestTimeManagementAllOverdue(t *testing.T) {
	now := time.Now()
	var tasks []model.Task
	for i := 0; i < 3; i++ {
		tasks = append(tasks, newTask("t", "overdue", model.PriorityHigh, false, due(now.Add(-time.Hour)), now))
	}

	got := analyzeTimeManagement(tasks, now)
	// 全部逾期：100 - 50×1 = 50
	assert.Equal(t, float64(50), got.TimeEfficiencyScore)
}

func TestTimeManagementUrgentMajoritySuggestion(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		newTask("t1", "urgent1", model.PriorityHigh, false, due(now.Add(2*time.Hour)), now),
		newTask("t2", "urgent2", model.PriorityHigh, false, due(now.Add(3*time.Hour)), now),
		newTask("t3", "calm", model.PriorityLow, false, nil, now),
	}

	got := analyzeTimeManagement(tasks, now)
	require.Len(t, got.Suggestions, 1)
	assert.Contains(t, got.Suggestions[0], "More than half of your tasks are urgent")
}

// ==========================================
// 日程排序
// ==========================================

func TestDailyScheduleOrdering(t *testing.T) {
	now := time.Now()

	// A: 高优先、2 小时后到期；B: 高优先、10 天后到期；C: 低优先、1 小时后到期
	// A 和 C 都在 24 小时窗口内，窗口内先比优先级 → A 在 C 前，B 垫底
	tasks := []model.Task{
		newTask("B", "b", model.PriorityHigh, false, due(now.Add(240*time.Hour)), now.Add(-3*time.Hour)),
		newTask("C", "c", model.PriorityLow, false, due(now.Add(time.Hour)), now.Add(-2*time.Hour)),
		newTask("A", "a", model.PriorityHigh, false, due(now.Add(2*time.Hour)), now.Add(-time.Hour)),
	}

	schedule := buildDailySchedule(tasks, now)
	require.Len(t, schedule, 3)
	assert.Equal(t, "A", schedule[0].ID)
	assert.Equal(t, "C", schedule[1].ID)
	assert.Equal(t, "B", schedule[2].ID)
}

func TestDailyScheduleCreationTimeTieBreak(t *testing.T) {
	now := time.Now()

	// 同紧急度同优先级，创建早的排前面
	tasks := []model.Task{
		newTask("newer", "n", model.PriorityMedium, false, nil, now.Add(-time.Hour)),
		newTask("older", "o", model.PriorityMedium, false, nil, now.Add(-48*time.Hour)),
	}

	schedule := buildDailySchedule(tasks, now)
	require.Len(t, schedule, 2)
	assert.Equal(t, "older", schedule[0].ID)
	assert.Equal(t, "newer", schedule[1].ID)
}

func TestDailyScheduleSkipsCompleted(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		newTask("t1", "done", model.PriorityHigh, true, due(now.Add(-time.Hour)), now),
		newTask("t2", "open", model.PriorityLow, false, nil, now),
	}

	schedule := buildDailySchedule(tasks, now)
	require.Len(t, schedule, 1)
	assert.Equal(t, "t2", schedule[0].ID)
}

func TestEstimateTaskTime(t *testing.T) {
	now := time.Now()

	base := newTask("t1", "short", model.PriorityHigh, false, nil, now)
	assert.Equal(t, 60, estimateTaskTime(&base))

	longTitle := newTask("t2", strings.Repeat("t", 51), model.PriorityMedium, false, nil, now)
	assert.Equal(t, 45+15, estimateTaskTime(&longTitle))

	longBoth := newTask("t3", strings.Repeat("t", 51), model.PriorityLow, false, nil, now)
	longBoth.Description = strings.Repeat("d", 101)
	assert.Equal(t, 30+15+20, estimateTaskTime(&longBoth))
}
