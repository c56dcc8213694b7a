// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/folio/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// adminContextKey は認証済み管理者のユーザー名をリクエストコンテキストに格納するためのキー。
var adminContextKey = contextKey("admin_user")

// AdminCredentials はBasic認証の照合対象となる管理者アカウント。
// PasswordHashはbcryptハッシュを保持する。パスワード平文はサーバー側に存在しない。
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// NewBasicAuthMiddleware はAuthorizationヘッダーのBasic認証を検証するミドルウェアを返す。
// セッションやトークンは発行せず、リクエストごとにヘッダーを検証する。
// ユーザー名は定数時間比較、パスワードはbcryptで照合する。
// 認証失敗時は401と {"error":"invalid credentials"} を返す。
func NewBasicAuthMiddleware(creds AdminCredentials) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				writeUnauthorized(w)
				return
			}

			userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) == 1
			passErr := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password))

			// ユーザー名不一致でもパスワード照合を先に済ませ、応答時間差を作らない
			if !userMatch || passErr != nil {
				slog.Warn("basic auth failed",
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
				)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext はリクエストコンテキストから認証済み管理者のユーザー名を取得する。
// Basic認証ミドルウェアを通過したリクエストでのみ有効。
func AdminFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(adminContextKey).(string)
	if !ok || username == "" {
		return "", fmt.Errorf("admin user not found in context")
	}
	return username, nil
}

// writeUnauthorized は401の統一レスポンスを書き込む。
func writeUnauthorized(w http.ResponseWriter) {
	WriteErrorResponse(w, model.NewUnauthorizedError())
}
