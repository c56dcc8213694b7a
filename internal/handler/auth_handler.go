package handler

import (
	"net/http"

	"github.com/hitoshi/folio/internal/middleware"
)

// AuthHandler は管理クライアントのログイン確認用ハンドラー。
// 認証の検証自体はBasic認証ミドルウェアが行い、
// ここに到達した時点で資格情報は有効と確定している。
type AuthHandler struct{}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// authCheckResponse はログイン確認のレスポンス。
type authCheckResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
}

// Check は資格情報の検証結果を返す。
// GET /auth-check
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	username, err := middleware.AdminFromContext(r.Context())
	if err != nil {
		middleware.WriteInternalServerError(w)
		return
	}
	writeJSON(w, http.StatusOK, authCheckResponse{Status: "ok", Username: username})
}
