package domain

import (
	"errors"
	"fmt"
)

// 分類用の番兵エラー。呼び出し側は errors.Is で判定する。
var (
	ErrValidation      = errors.New("validation failed")
	ErrStore           = errors.New("document store failure")
	ErrCorruptDocument = errors.New("corrupt document")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError は入力不備を表す。リトライせず即座に呼び出し元へ返す。
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError は Field/Message を持つ ValidationError を返す。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StoreError はドキュメントストアとの通信失敗を包む。
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError は err が nil なら nil を返す。ValidationError はそのまま透過させる。
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is により errors.Is(err, ErrStore) が成立する。
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
