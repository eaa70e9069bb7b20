package repository

import (
	"context"

	"github.com/leon37/TodoPilot/internal/model"
	"gorm.io/gorm"
)

// 列表状态筛选取值
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// TaskFilter 列表查询条件
// Status 为空串表示不过滤完成状态
type TaskFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// TaskRepo 定义接口 (为了方便 Mock)
// 所有按 ID 的操作都要求同时匹配 user_id：
// 查不到和不属于自己是同一种结果，外层不做区分
type TaskRepo interface {
	Create(ctx context.Context, task *model.Task) error
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	ListAllByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByID(ctx context.Context, userID, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	// WithContext 确保请求超时能传递到数据库层
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	switch filter.Status {
	case StatusActive:
		query = query.Where("completed = ?", false)
	case StatusCompleted:
		query = query.Where("completed = ?", true)
	}

	var tasks []model.Task
	err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAllByUser 取用户全部任务，AI 分析用（不分页）
func (r *taskRepo) ListAllByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) GetByID(ctx context.Context, userID, id string) (*model.Task, error) {
	var task model.Task
	// id 和 user_id 一起过滤：不是自己的任务等同于不存在
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete 返回是否真的删掉了东西，RowsAffected 为 0 说明没这条记录
func (r *taskRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
