package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/TodoPilot/internal/api/response"
	"github.com/leon37/TodoPilot/internal/service"
)

// AuthController 处理用户认证
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 构造函数
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// ==========================================
// DTOs (请求/响应参数定义)
// ==========================================

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// forgot-password 不管邮箱存不存在都回这一句，防止枚举账号
const forgotPasswordAck = "If an account with that email exists, a password reset link has been sent."

// ==========================================
// Handlers
// ==========================================

// Signup 用户注册
// @Summary 用户注册
// @Description 创建新用户，密码加密存储，注册成功直接返回令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "注册参数"
// @Success 201 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response "参数错误或邮箱已占用"
// @Router /auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req SignupRequest

	// 1. 参数校验
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Signup params invalid", "err", err)
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}

	// 2. 业务逻辑
	token, user, err := ctrl.authService.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Signup failed", "email", req.Email, "err", err)
		response.Error(c, http.StatusInternalServerError, "注册失败")
		return
	}

	// 3. 成功响应
	slog.Info("User signed up", "userID", user.ID)
	response.Created(c, AuthResponse{
		Token: token,
		User:  UserPayload{ID: user.ID, Email: user.Email},
	})
}

// Signin 用户登录
// @Summary 用户登录
// @Description 校验账号密码，颁发 JWT Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "登录参数"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Failure 401 {object} response.Response "账号或密码错误"
// @Router /auth/signin [post]
func (ctrl *AuthController) Signin(c *gin.Context) {
	var req SigninRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数格式错误")
		return
	}

	token, user, err := ctrl.authService.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("Signin failed", "email", req.Email)
		// 为了防止暴力破解，提示信息模糊化：不区分账号不存在和密码错误
		response.Error(c, http.StatusUnauthorized, "账号或密码错误")
		return
	}

	slog.Info("User signed in", "userID", user.ID)
	response.Success(c, AuthResponse{
		Token: token,
		User:  UserPayload{ID: user.ID, Email: user.Email},
	})
}

// Logout 登出
// @Summary 登出
// @Description 无状态 JWT，服务端不吊销令牌，客户端删掉就行
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "Logged out successfully"})
}

// ForgotPassword 发起密码重置
// @Summary 忘记密码
// @Description 不管邮箱存不存在都返回同样的应答
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "邮箱"
// @Success 200 {object} response.Response
// @Router /auth/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}

	// 令牌是带外投递的（比如发邮件），响应里绝不出现
	// 这里只在服务端留条日志方便排查
	token, err := ctrl.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		slog.Error("ForgotPassword failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "服务异常，请稍后再试")
		return
	}
	if token != "" {
		slog.Debug("Reset token issued", "email", req.Email)
	}

	response.Success(c, gin.H{"message": forgotPasswordAck})
}

// ResetPassword 用重置令牌改密码
// @Summary 重置密码
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置参数"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "令牌无效/过期/类型不对"
// @Router /auth/reset-password [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}

	err := ctrl.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) || errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("ResetPassword failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "重置失败")
		return
	}

	response.Success(c, gin.H{"message": "Password has been reset successfully"})
}
