package handler

import "net/http"

// WelcomeHandler はトップページ向けの挨拶メッセージを返すハンドラー。
type WelcomeHandler struct {
	message string
}

// NewWelcomeHandler はWelcomeHandlerを生成する。
func NewWelcomeHandler(message string) *WelcomeHandler {
	return &WelcomeHandler{message: message}
}

// Welcome は挨拶メッセージを返す。
// GET /api/welcome
func (h *WelcomeHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": h.message})
}
