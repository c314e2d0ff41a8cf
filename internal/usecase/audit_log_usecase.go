package usecase

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AuditLogUsecase struct {
	gate      *AccessGate
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(gate *AccessGate, auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{gate: gate, auditRepo: auditRepo}
}

// 監査ログ一覧はADMIN以上。
func (u *AuditLogUsecase) List(ctx context.Context, callerID int64, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return nil, err
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewRepositoryError(err)
	}
	return logs, nil
}
