package usecase

import (
	"errors"
	"fmt"
)

var (
	//403 呼び出し元が解決できない・ロール不足
	ErrWithoutPermission = errors.New("without permission")
	//404 参照先（顧客・注文・商品）が存在しない
	ErrNotFound = errors.New("not found")
	//400 入力不正
	ErrInvalidParams = errors.New("invalid params")
)

// ストレージ由来のエラー。元のエラーを包んで返す。
type RepositoryError struct {
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository error: %v", e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func NewRepositoryError(err error) error {
	return &RepositoryError{Err: err}
}

func AsRepositoryError(err error) (*RepositoryError, bool) {
	var re *RepositoryError
	ok := errors.As(err, &re)
	return re, ok
}
