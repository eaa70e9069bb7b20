package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/leon37/TodoPilot/internal/model"
	"github.com/leon37/TodoPilot/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 注册时邮箱已被占用
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 账号不存在和密码错误共用这一个错误，
	// 对外不暴露"用户是否存在"
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidResetToken 重置令牌无效/过期/类型不对
	ErrInvalidResetToken = errors.New("invalid or expired token")
	// ErrUserNotFound 重置密码时令牌主体已不存在
	ErrUserNotFound = errors.New("user not found")
)

type AuthService struct {
	userRepo repository.UserRepo
	tokens   *TokenService
}

func NewAuthService(userRepo repository.UserRepo, tokens *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Signup 注册：查重 → 加密 → 落库 → 直接签发访问令牌
func (s *AuthService) Signup(ctx context.Context, email, password string) (string, *model.User, error) {
	// 先查一下重复，DB Unique Index 会兜底
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	id, _ := uuid.NewV7()
	user := &model.User{
		ID:           id.String(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Signin 登录，成功返回令牌
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials // 模糊报错为了安全
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ForgotPassword 发起重置流程
// 邮箱不存在时返回空令牌且不报错：对外的应答永远一样，防止枚举账号
// 令牌的投递（比如发邮件）不在这里做，由调用方带外处理
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID, user.Email, TokenTypeReset, ResetTokenTTL)
}

// ResetPassword 用重置令牌改密码
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, ok := s.tokens.Verify(token, TokenTypeReset)
	if !ok {
		return ErrInvalidResetToken
	}

	// 注意：这里查不到用户会返回 ErrUserNotFound (400)，
	// 和 forgot-password 的"永远不说用户在不在"并不一致，原始行为就是这样，先保留
	if _, err := s.userRepo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, claims.UserID, hash)
}
