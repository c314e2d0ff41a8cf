package usecase

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type UpdateOrderStatusInput struct {
	Status string
}

// ステータス更新。どの状態からどの状態へも直接変更できる（順方向の強制はしない）。
// 明細・合計・在庫には一切触らない。
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, callerID int64, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	caller, err := u.gate.Require(ctx, callerID, model.RoleOperator)
	if err != nil {
		return OrderOutput{}, err
	}
	if orderID <= 0 {
		return OrderOutput{}, ErrInvalidParams
	}

	newStatus, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return OrderOutput{}, ErrInvalidParams
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return NewRepositoryError(err)
		}

		beforeStatus := string(o.Status)

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return NewRepositoryError(err)
		}

		//監査ログ（UPDATE_ORDER_STATUS）。更新と同じトランザクションで書く
		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  caller.ID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewRepositoryError(err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewRepositoryError(err)
		}

		o.Status = newStatus
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除。明細もカスケードで消す。在庫は戻さない。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, callerID int64, orderID int64) error {
	if _, err := u.gate.Require(ctx, callerID, model.RoleAdmin); err != nil {
		return err
	}
	if orderID <= 0 {
		return ErrInvalidParams
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotFound
			}
			return NewRepositoryError(err)
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewRepositoryError(err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewRepositoryError(err)
		}
		return nil
	})
}
