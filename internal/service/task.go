package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leon37/TodoPilot/internal/model"
	"github.com/leon37/TodoPilot/internal/repository"
	"gorm.io/gorm"
)

// ErrTaskNotFound 任务不存在或者不属于当前用户
// 两种情况刻意不区分：404 不能用来探测别人的任务存不存在
var ErrTaskNotFound = errors.New("task not found")

// TaskInput 创建任务的参数 (DTO)
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
}

// TaskPatch 更新任务的参数，指针为 nil 表示调用方没传、维持原值
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
	Priority    *string
}

type TaskService struct {
	repo repository.TaskRepo
}

func NewTaskService(repo repository.TaskRepo) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask 新建任务，ID 和归属都在这里赋值，不信任调用方
func (s *TaskService) CreateTask(ctx context.Context, userID string, input TaskInput) (*model.Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	id, _ := uuid.NewV7()
	task := &model.Task{
		ID:          id.String(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    priority,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks 按条件分页查询
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{} // 空列表返回 []，不要 null
	}
	return tasks, nil
}

// GetTask 查单条
func (s *TaskService) GetTask(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask 部分更新：只改调用方显式传了的字段
func (s *TaskService) UpdateTask(ctx context.Context, userID, id string, patch TaskPatch) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask 删除
func (s *TaskService) DeleteTask(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// ToggleCompletion 设置完成标记
func (s *TaskService) ToggleCompletion(ctx context.Context, userID, id string, completed bool) (*model.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.Completed = completed
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
