package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/folio/internal/middleware"
	"github.com/hitoshi/folio/internal/model"
)

// AboutServiceInterface は自己紹介ハンドラーが必要とするサービスインターフェース。
type AboutServiceInterface interface {
	List(ctx context.Context) ([]*model.AboutItem, error)
	Create(ctx context.Context, item *model.AboutItem) (*model.AboutItem, error)
	Update(ctx context.Context, id string, item *model.AboutItem) (*model.AboutItem, error)
	Delete(ctx context.Context, id string) error
}

// AboutHandler は自己紹介項目のHTTPハンドラー。
type AboutHandler struct {
	service AboutServiceInterface
}

// NewAboutHandler はAboutHandlerを生成する。
func NewAboutHandler(service AboutServiceInterface) *AboutHandler {
	return &AboutHandler{service: service}
}

// List は全項目を返す。
// GET /api/About
func (h *AboutHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create は項目を作成し、保存されたレコード全体を返す。
// POST /api/About
func (h *AboutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item model.AboutItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		middleware.WriteErrorResponse(w, model.NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &item)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は項目を置き換え、更新後のレコード全体を返す。
// PUT /api/About/{id}
func (h *AboutHandler) Update(w http.ResponseWriter, r *http.Request) {
	var item model.AboutItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		middleware.WriteErrorResponse(w, model.NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &item)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は項目を削除する。
// DELETE /api/About/{id}
func (h *AboutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
