package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TodoPilot/internal/api/response"
	"github.com/leon37/TodoPilot/internal/repository"
	"github.com/leon37/TodoPilot/internal/service"
)

type TaskController struct {
	service *service.TaskService // 依赖 Service
}

// NewTaskController 构造函数
func NewTaskController(s *service.TaskService) *TaskController {
	return &TaskController{service: s}
}

// ==========================================
// DTOs
// ==========================================

// ListRequest 列表请求参数
type ListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=active completed"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=high medium low"`
}

// UpdateTaskRequest 全部用指针：没传的字段保持原值
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=high medium low"`
}

// ToggleCompleteRequest 用 *bool 是为了让 completed:false 也能通过 required 校验
type ToggleCompleteRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ==========================================
// Handlers
// ==========================================

// List 任务列表
// @Summary 获取任务列表
// @Description 只返回当前用户自己的任务，支持状态筛选和分页
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param status query string false "active / completed，不传查全部"
// @Param limit query int false "1-100，默认 20"
// @Param offset query int false "默认 0"
// @Success 200 {object} response.Response
// @Router /tasks [get]
func (ctrl *TaskController) List(c *gin.Context) {
	userID := c.GetString("userID")

	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	filter := repository.TaskFilter{
		UserID: userID,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	}

	tasks, err := ctrl.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		slog.Error("获取任务列表失败", "error", err)
		response.Error(c, http.StatusInternalServerError, "获取列表失败")
		return
	}

	response.Success(c, tasks)
}

// Create 新建任务
// @Summary 新建任务
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "任务内容"
// @Success 201 {object} response.Response
// @Router /tasks [post]
func (ctrl *TaskController) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}

	task, err := ctrl.service.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		slog.Error("创建任务失败", "error", err)
		response.Error(c, http.StatusInternalServerError, "创建失败")
		return
	}

	response.Created(c, task)
}

// Get 查单条任务
// @Summary 获取任务详情
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response "不存在或不是自己的"
// @Router /tasks/{id} [get]
func (ctrl *TaskController) Get(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	task, err := ctrl.service.GetTask(c.Request.Context(), userID, id)
	if err != nil {
		ctrl.writeTaskError(c, id, err)
		return
	}

	response.Success(c, task)
}

// Update 更新任务
// @Summary 更新任务
// @Description 只更新显式传入的字段，仅限本人操作
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务 ID"
// @Param request body UpdateTaskRequest true "更新字段"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id} [put]
func (ctrl *TaskController) Update(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}

	task, err := ctrl.service.UpdateTask(c.Request.Context(), userID, id, patch)
	if err != nil {
		ctrl.writeTaskError(c, id, err)
		return
	}

	response.Success(c, task)
}

// Delete 删除任务
// @Summary 删除任务
// @Tags Task
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id} [delete]
func (ctrl *TaskController) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := ctrl.service.DeleteTask(c.Request.Context(), userID, id); err != nil {
		ctrl.writeTaskError(c, id, err)
		return
	}

	response.Success(c, nil)
}

// ToggleComplete 切换完成状态
// @Summary 切换完成状态
// @Tags Task
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "任务 ID"
// @Param request body ToggleCompleteRequest true "完成标记"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id}/toggle-complete [patch]
func (ctrl *TaskController) ToggleComplete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req ToggleCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	task, err := ctrl.service.ToggleCompletion(c.Request.Context(), userID, id, *req.Completed)
	if err != nil {
		ctrl.writeTaskError(c, id, err)
		return
	}

	response.Success(c, task)
}

// writeTaskError 统一处理任务操作的错误出口
// 不存在和无权访问都是 404，其它都算服务端错误
func (ctrl *TaskController) writeTaskError(c *gin.Context, id string, err error) {
	if errors.Is(err, service.ErrTaskNotFound) {
		response.Error(c, http.StatusNotFound, "Task not found")
		return
	}
	slog.Error("任务操作失败", "id", id, "error", err)
	response.Error(c, http.StatusInternalServerError, "操作失败")
}
