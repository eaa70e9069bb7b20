package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/leon37/TodoPilot/internal/config"
	"github.com/leon37/TodoPilot/internal/model"
)

// mockUserRepo 内存版用户仓储
type mockUserRepo struct {
	users       map[string]*model.User // email -> user
	createError error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createError != nil {
		return m.createError
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	for _, user := range m.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestAuthService() (*AuthService, *mockUserRepo) {
	repo := newMockUserRepo()
	tokens := NewTokenService(config.JWTConfig{Secret: testSecret, ExpireMinutes: 30})
	return NewAuthService(repo, tokens), repo
}

func TestSignupAndSignin(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	token, user, err := svc.Signup(ctx, "a@b.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	// 库里存的是哈希，不是明文
	assert.NotEqual(t, "hunter22", repo.users["a@b.com"].PasswordHash)

	token, user2, err := svc.Signin(ctx, "a@b.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, user2.ID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "a@b.com", "hunter22")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "a@b.com", "other-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSigninBlursFailureCause(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "a@b.com", "hunter22")
	require.NoError(t, err)

	// 账号不存在和密码错误必须是同一个错误，不暴露用户存在性
	_, _, errUnknown := svc.Signin(ctx, "nobody@b.com", "whatever")
	_, _, errWrongPw := svc.Signin(ctx, "a@b.com", "wrong-password")

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	// 邮箱不存在：没有令牌，也没有错误，调用方照常回同一句话
	token, err := svc.ForgotPassword(context.Background(), "nobody@b.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "a@b.com", "old-password")
	require.NoError(t, err)

	resetToken, err := svc.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, resetToken)

	require.NoError(t, svc.ResetPassword(ctx, resetToken, "new-password"))

	// 旧密码作废，新密码生效
	_, _, err = svc.Signin(ctx, "a@b.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Signin(ctx, "a@b.com", "new-password")
	assert.NoError(t, err)
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	accessToken, _, err := svc.Signup(ctx, "a@b.com", "hunter22")
	require.NoError(t, err)

	// 访问令牌不能用来重置密码
	err = svc.ResetPassword(ctx, accessToken, "new-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordUserGone(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "a@b.com", "hunter22")
	require.NoError(t, err)

	resetToken, err := svc.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)

	// 令牌签发后用户被删：重置报 400 级别的 ErrUserNotFound
	delete(repo.users, "a@b.com")
	err = svc.ResetPassword(ctx, resetToken, "new-password")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
