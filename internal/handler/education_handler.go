package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/folio/internal/middleware"
	"github.com/hitoshi/folio/internal/model"
)

// EducationServiceInterface は学歴ハンドラーが必要とするサービスインターフェース。
type EducationServiceInterface interface {
	List(ctx context.Context) ([]*model.Education, error)
	Create(ctx context.Context, e *model.Education) (*model.Education, error)
	Update(ctx context.Context, id string, e *model.Education) (*model.Education, error)
	Delete(ctx context.Context, id string) error
}

// EducationHandler は学歴のHTTPハンドラー。
type EducationHandler struct {
	service EducationServiceInterface
}

// NewEducationHandler はEducationHandlerを生成する。
func NewEducationHandler(service EducationServiceInterface) *EducationHandler {
	return &EducationHandler{service: service}
}

// List は全学歴を返す。
// GET /api/Education
func (h *EducationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create は学歴を作成し、保存されたレコード全体を返す。
// POST /api/Education
func (h *EducationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.Education
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

// Update は学歴を置き換え、更新後のレコード全体を返す。
// PUT /api/Education/{id}
func (h *EducationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var e model.Education
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

// Delete は学歴を削除する。
// DELETE /api/Education/{id}
func (h *EducationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
