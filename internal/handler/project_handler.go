package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/project"
)

// ProjectServiceInterface は制作物ハンドラーが必要とするサービスインターフェース。
type ProjectServiceInterface interface {
	List(ctx context.Context) ([]*model.Project, error)
	Create(ctx context.Context, form *project.Form) (*model.Project, error)
	Update(ctx context.Context, id string, form *project.Form) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHandler は制作物のHTTPハンドラー。
// 作成・更新はマルチパートフォーム（name, description, tech, link,
// github_link, image, files）で受け付ける。
type ProjectHandler struct {
	service   ProjectServiceInterface
	maxUpload int64
}

// NewProjectHandler はProjectHandlerを生成する。
func NewProjectHandler(service ProjectServiceInterface, maxUpload int64) *ProjectHandler {
	return &ProjectHandler{service: service, maxUpload: maxUpload}
}

// List は全制作物を返す。
// GET /api/Projects
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Create は制作物を作成し、保存されたレコード全体を返す。
// POST /api/Projects (multipart/form-data)
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseForm(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), form)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update は制作物を置き換え、更新後のレコード全体を返す。
// PUT /api/Projects/{id} (multipart/form-data)
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseForm(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete は制作物を削除する。
// DELETE /api/Projects/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseForm はマルチパートフォームを解析してproject.Formを組み立てる。
// techは繰り返しフィールドとカンマ区切りの両方を受け付ける（正規化はサービス層が行う）。
func (h *ProjectHandler) parseForm(r *http.Request) (*project.Form, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, model.NewUploadTooLargeError(h.maxUpload)
		}
		return nil, model.NewInvalidRequestError("invalid multipart form")
	}

	form := &project.Form{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Tech:        r.MultipartForm.Value["tech"],
		Link:        r.FormValue("link"),
		GithubLink:  r.FormValue("github_link"),
		Files:       r.MultipartForm.File["files"],
	}
	if images := r.MultipartForm.File["image"]; len(images) > 0 {
		form.Image = images[0]
	}
	return form, nil
}
