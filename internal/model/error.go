// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrOwnerNotFound  = errors.New("owner not found or invalid")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
)

// AppError はクライアントに返すエラー詳細と根本原因を持ちます
type AppError struct {
	Detail ErrorDetail
	Err    error // errors.Is で判定する根本原因
}

// NewAppError は AppError を生成します
func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorDetail はエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
