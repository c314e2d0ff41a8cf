package usecase

import (
	"context"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestUser(t *testing.T, password string, active bool) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &model.User{
		ID:           42,
		Name:         "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     active,
	}
}

func TestLogin_Success(t *testing.T) {
	cfg := config.Config{JWTSecret: "login-test-secret"}
	user := newAuthTestUser(t, "correct-password", true)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	users.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := NewAuthUsecase(cfg, users)

	res, err := uc.Login(context.Background(), AuthLoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.User.ID)
	assert.Equal(t, "ADMIN", res.User.Role)
	assert.Equal(t, 900, res.Token.ExpiresIn)

	//発行したトークンは自分のシークレットで検証できてsub/roleが入っている
	token, err := jwt.Parse(res.Token.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	//last_loginも更新される
	users.AssertCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	cfg := config.Config{JWTSecret: "login-test-secret"}
	user := newAuthTestUser(t, "correct-password", true)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	uc := NewAuthUsecase(cfg, users)

	_, err := uc.Login(context.Background(), AuthLoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrWithoutPermission)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, repo.ErrUserNotFound)

	uc := NewAuthUsecase(config.Config{JWTSecret: "s"}, users)

	//存在しないemailもパスワード不一致と同じ顔で返す
	_, err := uc.Login(context.Background(), AuthLoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrWithoutPermission)
}

func TestLogin_InactiveUser(t *testing.T) {
	user := newAuthTestUser(t, "correct-password", false)

	users := new(UserRepoMock)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(user, nil)

	uc := NewAuthUsecase(config.Config{JWTSecret: "s"}, users)

	_, err := uc.Login(context.Background(), AuthLoginRequest{Email: user.Email, Password: "correct-password"})
	assert.ErrorIs(t, err, ErrWithoutPermission)
}

func TestLogin_InvalidParams(t *testing.T) {
	uc := NewAuthUsecase(config.Config{JWTSecret: "s"}, new(UserRepoMock))

	_, err := uc.Login(context.Background(), AuthLoginRequest{Email: "  ", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = uc.Login(context.Background(), AuthLoginRequest{Email: "a@example.com", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestMe_ResolvesSelfWithoutRoleGate(t *testing.T) {
	user := newAuthTestUser(t, "pw", true)
	user.Role = model.RoleOperator

	users := new(UserRepoMock)
	users.On("FindByID", mock.Anything, int64(42)).Return(user, nil)

	uc := NewAuthUsecase(config.Config{JWTSecret: "s"}, users)

	dto, err := uc.Me(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), dto.ID)
	assert.Equal(t, "OPERATOR", dto.Role)
}
