package handler

import (
	"net/http"
	"time"

	"github.com/hitoshi/folio/internal/model"
)

// BlogServiceInterface はブログハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	Posts() ([]*model.BlogPost, time.Time)
}

// BlogHandler は外部ブログ記事のHTTPハンドラー。
type BlogHandler struct {
	service BlogServiceInterface
}

// NewBlogHandler はBlogHandlerを生成する。
func NewBlogHandler(service BlogServiceInterface) *BlogHandler {
	return &BlogHandler{service: service}
}

// blogResponse はブログ記事一覧のレスポンス。
type blogResponse struct {
	Posts     []*model.BlogPost `json:"posts"`
	FetchedAt *time.Time        `json:"fetched_at,omitempty"`
}

// List はキャッシュ済みのブログ記事一覧を返す。
// GET /api/Blog
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, fetchedAt := h.service.Posts()

	resp := blogResponse{Posts: posts}
	if !fetchedAt.IsZero() {
		resp.FetchedAt = &fetchedAt
	}
	writeJSON(w, http.StatusOK, resp)
}
