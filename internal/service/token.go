package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leon37/TodoPilot/internal/config"
)

const (
	// TokenTypeAccess 普通访问令牌不带 type 字段
	TokenTypeAccess = ""
	// TokenTypeReset 重置密码令牌，不能当访问令牌用，反之亦然
	TokenTypeReset = "reset"

	// DefaultTokenTTL 未指定有效期时的兜底值
	DefaultTokenTTL = 15 * time.Minute
	// ResetTokenTTL 重置令牌固定 1 小时
	ResetTokenTTL = time.Hour
)

// Claims 是令牌解开之后的内容
type Claims struct {
	UserID string
	Email  string
	Type   string
}

// TokenService 负责签发和校验 JWT
// 密钥从配置注入，不读全局状态
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:    []byte(cfg.Secret),
		accessTTL: cfg.AccessTokenTTL(),
	}
}

// IssueAccess 签发普通访问令牌，有效期用配置值
func (s *TokenService) IssueAccess(userID, email string) (string, error) {
	return s.Issue(userID, email, TokenTypeAccess, s.accessTTL)
}

// Issue 签发令牌：sub + email + 绝对过期时间，HS256 签名
func (s *TokenService) Issue(userID, email, tokenType string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	if tokenType != "" {
		claims["type"] = tokenType
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify 校验令牌并返回 Claims
// 签名错、格式错、过期、类型不符，全部走同一个 (nil, false) 出口，
// 调用方不需要也不应该区分失败原因
func (s *TokenService) Verify(tokenString, wantType string) (*Claims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, false
	}

	// 重置令牌不能冒充访问令牌，访问令牌也不能用来重置密码
	typ, _ := mc["type"].(string)
	if typ != wantType {
		return nil, false
	}

	email, _ := mc["email"].(string)
	return &Claims{UserID: sub, Email: email, Type: typ}, true
}
