package usecase

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	gate  *AccessGate
	users repo.UserRepository
}

func NewUserUsecase(gate *AccessGate, users repo.UserRepository) *UserUsecase {
	return &UserUsecase{gate: gate, users: users}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ユーザー作成はSUPER_ADMINのみ。
func (u *UserUsecase) CreateUser(ctx context.Context, callerID int64, in CreateUserInput) (*UserDTO, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleSuperAdmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidParams
	}
	if len(in.Password) < 8 {
		return nil, ErrInvalidParams
	}
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return nil, ErrInvalidParams
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewRepositoryError(err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Role:         role,
		IsActive:     true,
	}

	//保存（email重複はrepoのunique違反で弾く）
	if err := u.users.Create(ctx, user); err != nil {
		return nil, NewRepositoryError(err)
	}

	dto := toUserDTO(user)
	return &dto, nil
}
