package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/folio/internal/model"
)

// SocialServiceInterface はSNSリンクハンドラーが必要とするサービスインターフェース。
type SocialServiceInterface interface {
	List(ctx context.Context) ([]*model.SocialLink, error)
}

// SocialHandler はSNSリンクのHTTPハンドラー。読み取りのみ。
type SocialHandler struct {
	service SocialServiceInterface
}

// NewSocialHandler はSocialHandlerを生成する。
func NewSocialHandler(service SocialServiceInterface) *SocialHandler {
	return &SocialHandler{service: service}
}

// List は全SNSリンクを返す。
// GET /api/Social
func (h *SocialHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}
