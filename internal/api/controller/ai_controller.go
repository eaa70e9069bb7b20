package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TodoPilot/internal/api/response"
	"github.com/leon37/TodoPilot/internal/model"
	"github.com/leon37/TodoPilot/internal/service"
)

// AIController 任务智能分析
// 说是 AI，其实是一组固定规则，纯内存计算，不调外部服务
type AIController struct {
	scheduler *service.SchedulerService
}

func NewAIController(scheduler *service.SchedulerService) *AIController {
	return &AIController{scheduler: scheduler}
}

type ScheduleResponse struct {
	Schedule []model.ScheduleItem `json:"schedule"`
}

// AnalyzeTasks 任务分析
// @Summary AI 任务分析
// @Description 给未完成任务生成建议、优先级分布评分和时间效率评分
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=model.TaskAnalysis}
// @Router /ai/analyze-tasks [post]
func (ctrl *AIController) AnalyzeTasks(c *gin.Context) {
	userID := c.GetString("userID")

	analysis, err := ctrl.scheduler.AnalyzeTasks(c.Request.Context(), userID)
	if err != nil {
		slog.Error("任务分析失败", "error", err)
		response.Error(c, http.StatusInternalServerError, "分析失败")
		return
	}

	response.Success(c, analysis)
}

// GenerateDailySchedule 生成当日日程
// @Summary 生成当日日程
// @Description 按紧急度、优先级、创建时间排序，并给出每条任务的耗时估算
// @Tags AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=controller.ScheduleResponse}
// @Router /ai/generate-daily-schedule [post]
func (ctrl *AIController) GenerateDailySchedule(c *gin.Context) {
	userID := c.GetString("userID")

	schedule, err := ctrl.scheduler.GenerateDailySchedule(c.Request.Context(), userID)
	if err != nil {
		slog.Error("生成日程失败", "error", err)
		response.Error(c, http.StatusInternalServerError, "生成失败")
		return
	}

	response.Success(c, ScheduleResponse{Schedule: schedule})
}
