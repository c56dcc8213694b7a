package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/folio/internal/middleware"
	"github.com/hitoshi/folio/internal/model"
)

// ExperienceServiceInterface は職務経歴ハンドラーが必要とするサービスインターフェース。
type ExperienceServiceInterface interface {
	List(ctx context.Context) ([]*model.Experience, error)
	Create(ctx context.Context, e *model.Experience) (*model.Experience, error)
	Update(ctx context.Context, id string, e *model.Experience) (*model.Experience, error)
	Delete(ctx context.Context, id string) error
}

// ExperienceHandler は職務経歴のHTTPハンドラー。
type ExperienceHandler struct {
	service ExperienceServiceInterface
}

// NewExperienceHandler はExperienceHandlerを生成する。
func NewExperienceHandler(service ExperienceServiceInterface) *ExperienceHandler {
	return &ExperienceHandler{service: service}
}

// List は全経歴を返す。
// GET /api/Experience
func (h *ExperienceHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create は経歴を作成し、保存されたレコード全体を返す。
// POST /api/Experience
func (h *ExperienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.Experience
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		middleware.WriteErrorResponse(w, model.NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.service.Create(r.Context(), &e)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は経歴を置き換え、更新後のレコード全体を返す。
// PUT /api/Experience/{id}
func (h *ExperienceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var e model.Experience
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		middleware.WriteErrorResponse(w, model.NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &e)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は経歴を削除する。
// DELETE /api/Experience/{id}
func (h *ExperienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
