package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/folio/internal/model"
)

// mockAboutService はAboutServiceInterfaceのモック実装
type mockAboutService struct {
	listFunc   func(ctx context.Context) ([]*model.AboutItem, error)
	createFunc func(ctx context.Context, item *model.AboutItem) (*model.AboutItem, error)
	updateFunc func(ctx context.Context, id string, item *model.AboutItem) (*model.AboutItem, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockAboutService) List(ctx context.Context) ([]*model.AboutItem, error) {
	return m.listFunc(ctx)
}
func (m *mockAboutService) Create(ctx context.Context, item *model.AboutItem) (*model.AboutItem, error) {
	return m.createFunc(ctx, item)
}
func (m *mockAboutService) Update(ctx context.Context, id string, item *model.AboutItem) (*model.AboutItem, error) {
	return m.updateFunc(ctx, id, item)
}
func (m *mockAboutService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

// ハンドラー単体テスト用の最小ルーター
func aboutTestRouter(svc AboutServiceInterface) http.Handler {
	h := NewAboutHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/About", h.List)
	r.Post("/api/About", h.Create)
	r.Put("/api/About/{id}", h.Update)
	r.Delete("/api/About/{id}", h.Delete)
	return r
}

// 一覧取得が200でJSON配列を返すことを検証
func TestAboutHandler_List(t *testing.T) {
	svc := &mockAboutService{
		listFunc: func(ctx context.Context) ([]*model.AboutItem, error) {
			return []*model.AboutItem{{ID: "a1", Title: "自己紹介", Content: "<p>hi</p>"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/About", nil)
	rec := httptest.NewRecorder()
	aboutTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var items []*model.AboutItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("response is not JSON array: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a1" {
		t.Errorf("items = %v", items)
	}
}

// 作成が201で保存後のレコード全体を返すことを検証
func TestAboutHandler_Create(t *testing.T) {
	svc := &mockAboutService{
		createFunc: func(ctx context.Context, item *model.AboutItem) (*model.AboutItem, error) {
			item.ID = "server-assigned"
			return item, nil
		},
	}

	body := `{"title":"スキル","content":"<p>Go</p>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/About", strings.NewReader(body))
	rec := httptest.NewRecorder()
	aboutTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var created model.AboutItem
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if created.ID != "server-assigned" {
		t.Errorf("ID = %q, response should carry the server-assigned ID", created.ID)
	}
}

// 不正なJSONボディで400と統一エラーフォーマットが返ることを検証
func TestAboutHandler_CreateInvalidBody(t *testing.T) {
	svc := &mockAboutService{
		createFunc: func(ctx context.Context, item *model.AboutItem) (*model.AboutItem, error) {
			t.Error("service should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/About", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	aboutTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Error(`response should carry an "error" field`)
	}
}

// サービスのAPIErrorがそのステータスで返ることを検証
func TestAboutHandler_UpdateNotFound(t *testing.T) {
	svc := &mockAboutService{
		updateFunc: func(ctx context.Context, id string, item *model.AboutItem) (*model.AboutItem, error) {
			return nil, model.NewNotFoundError("about item", id)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/About/missing", strings.NewReader(`{"title":"t","content":"c"}`))
	rec := httptest.NewRecorder()
	aboutTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// 削除が204を返しパスのIDがサービスに渡ることを検証
func TestAboutHandler_Delete(t *testing.T) {
	var gotID string
	svc := &mockAboutService{
		deleteFunc: func(ctx context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/About/a1", nil)
	rec := httptest.NewRecorder()
	aboutTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if gotID != "a1" {
		t.Errorf("id = %q, want a1", gotID)
	}
}
