package api

import (
	"github.com/gin-gonic/gin"
	"github.com/leon37/TodoPilot/internal/api/controller"
	"github.com/leon37/TodoPilot/internal/api/middleware"
	"github.com/leon37/TodoPilot/internal/service"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(
	r *gin.Engine,
	tokens *service.TokenService,
	authCtrl *controller.AuthController,
	taskCtrl *controller.TaskController,
	aiCtrl *controller.AIController,
) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/api/auth")
	{
		public.POST("/signup", authCtrl.Signup)
		public.POST("/signin", authCtrl.Signin)
		public.POST("/forgot-password", authCtrl.ForgotPassword)
		public.POST("/reset-password", authCtrl.ResetPassword)
	}

	// API 组，全部要求带有效的访问令牌
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuth(tokens))
	{
		protected.POST("/auth/logout", authCtrl.Logout)

		protected.GET("/tasks", taskCtrl.List)
		protected.POST("/tasks", taskCtrl.Create)
		protected.GET("/tasks/:id", taskCtrl.Get)
		protected.PUT("/tasks/:id", taskCtrl.Update)
		protected.DELETE("/tasks/:id", taskCtrl.Delete)
		protected.PATCH("/tasks/:id/toggle-complete", taskCtrl.ToggleComplete)

		protected.POST("/ai/analyze-tasks", aiCtrl.AnalyzeTasks)
		protected.POST("/ai/generate-daily-schedule", aiCtrl.GenerateDailySchedule)
	}
}
