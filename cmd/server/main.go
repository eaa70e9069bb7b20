package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TodoPilot/internal/api"
	"github.com/leon37/TodoPilot/internal/api/controller"
	"github.com/leon37/TodoPilot/internal/api/middleware"
	"github.com/leon37/TodoPilot/internal/config"
	"github.com/leon37/TodoPilot/internal/infrastructure/database"
	"github.com/leon37/TodoPilot/internal/repository"
	"github.com/leon37/TodoPilot/internal/service"
)

func main() {
	// 1. 初始化 Logger
	// 使用 JSONHandler 可以让日志以 JSON 格式输出，方便解析
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 开发阶段设为 Debug，生产环境改为 Info
	}))

	// 设置为全局默认 logger
	slog.SetDefault(logger)

	slog.Info("TodoPilot 系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	// 2. Infra Initialization
	db := database.NewMySQLConnection(conf.Database.DSN) // 这里会自动建表

	if conf.Server.Port != ":8080" { // 简单的判断，生产环境建议用配置字段
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Layer Wiring (依赖注入)
	// 令牌服务的密钥和有效期都从配置注入，不读全局状态
	tokens := service.NewTokenService(conf.JWT)

	userRepo := repository.NewUserRepo(db)
	taskRepo := repository.NewTaskRepo(db)

	authSvc := service.NewAuthService(userRepo, tokens)
	taskSvc := service.NewTaskService(taskRepo)
	scheduler := service.NewSchedulerService(taskRepo)

	authController := controller.NewAuthController(authSvc)
	taskController := controller.NewTaskController(taskSvc)
	aiController := controller.NewAIController(scheduler)

	// 4. Server Start
	r := gin.Default()
	r.Use(middleware.Cors())
	api.RegisterRoutes(r, tokens, authController, taskController, aiController)

	slog.Info("TodoPilot Web Server 启动中", "port", conf.Server.Port)
	if err := r.Run(conf.Server.Port); err != nil {
		slog.Error("服务器启动失败", "error", err)
	}
}
