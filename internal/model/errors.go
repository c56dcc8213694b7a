// Package model はポートフォリオサイトのドメインモデルを定義する。
package model

import "fmt"

// APIError はAPIレスポンスとして返すエラーを表す。
// Messageはレスポンスボディの error フィールドとしてそのままクライアントに表示される。
type APIError struct {
	Code    string // エラーコード（ログ・分類用）
	Message string // ユーザーに表示するメッセージ
	Status  int    // 対応するHTTPステータスコード
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUploadTooLarge  = "UPLOAD_TOO_LARGE"
	ErrCodeUploadRejected  = "UPLOAD_REJECTED"
	ErrCodeBlogUnavailable = "BLOG_UNAVAILABLE"
)

// NewUnauthorizedError は認証失敗エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: "invalid credentials",
		Status:  401,
	}
}

// NewInvalidRequestError はリクエストボディを解釈できない場合のエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:    ErrCodeInvalidRequest,
		Message: reason,
		Status:  400,
	}
}

// NewValidationError は必須フィールド欠落などの検証エラーを生成する。
// フィールド名は `<field> required` の形式でそのままクライアントに表示される。
func NewValidationError(field string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s required", field),
		Status:  400,
	}
}

// NewNotFoundError は指定IDのレコードが存在しない場合のエラーを生成する。
func NewNotFoundError(kind, id string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", kind, id),
		Status:  404,
	}
}

// NewUploadTooLargeError はアップロードサイズ超過エラーを生成する。
func NewUploadTooLargeError(maxBytes int64) *APIError {
	return &APIError{
		Code:    ErrCodeUploadTooLarge,
		Message: fmt.Sprintf("upload exceeds %d bytes", maxBytes),
		Status:  413,
	}
}
