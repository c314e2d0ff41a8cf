package usecase

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 各操作の先頭で呼ぶ前提条件。callerを解決して最低ロールを確認する。
type AccessGate struct {
	users repo.UserRepository
}

func NewAccessGate(users repo.UserRepository) *AccessGate {
	return &AccessGate{users: users}
}

func (g *AccessGate) Require(ctx context.Context, callerID int64, min model.Role) (*model.User, error) {
	if callerID <= 0 {
		return nil, ErrWithoutPermission
	}

	u, err := g.users.FindByID(ctx, callerID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, ErrWithoutPermission
	}
	if err != nil {
		return nil, NewRepositoryError(err)
	}

	//停止ユーザーは全操作不可
	if !u.IsActive {
		return nil, ErrWithoutPermission
	}
	if !u.Role.AtLeast(min) {
		return nil, ErrWithoutPermission
	}

	return u, nil
}
