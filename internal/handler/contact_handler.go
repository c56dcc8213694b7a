package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hitoshi/folio/internal/contact"
	"github.com/hitoshi/folio/internal/middleware"
	"github.com/hitoshi/folio/internal/model"
)

// ContactServiceInterface は問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	Submit(ctx context.Context, sub *contact.Submission) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]*model.ContactMessage, error)
}

// ContactRecorder は問い合わせメトリクスの記録インターフェース。
type ContactRecorder interface {
	RecordContactAccepted()
	RecordContactDropped()
}

// ContactHandler は問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	service  ContactServiceInterface
	recorder ContactRecorder
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface, recorder ContactRecorder) *ContactHandler {
	return &ContactHandler{service: service, recorder: recorder}
}

// Submit は問い合わせを受け付ける。
// ハニーポットで破棄した場合も送信側には成功を返す。
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		middleware.WriteErrorResponse(w, model.NewInvalidRequestError("invalid request body"))
		return
	}

	accepted, err := h.service.Submit(r.Context(), &sub)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if accepted {
		h.recorder.RecordContactAccepted()
	} else {
		h.recorder.RecordContactDropped()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// ListMessages は受信した問い合わせを新しい順に返す。管理者専用。
// GET /api/contact-messages?limit=50
func (h *ContactHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.WriteErrorResponse(w, model.NewInvalidRequestError("limit must be a number"))
			return
		}
		limit = n
	}

	msgs, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if msgs == nil {
		msgs = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
