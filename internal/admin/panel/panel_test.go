package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hitoshi/folio/internal/admin/api"
)

type mockAPI struct {
	mu         sync.Mutex
	listFunc   func(ctx context.Context, kind api.Kind) ([]map[string]any, error)
	createFunc func(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error)
	updateFunc func(ctx context.Context, kind api.Kind, id string, payload *api.Payload) (map[string]any, error)
	deleteFunc func(ctx context.Context, kind api.Kind, id string) error
	listCalls  int
}

func (m *mockAPI) List(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	return m.listFunc(ctx, kind)
}

func (m *mockAPI) Create(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error) {
	return m.createFunc(ctx, kind, payload)
}

func (m *mockAPI) Update(ctx context.Context, kind api.Kind, id string, payload *api.Payload) (map[string]any, error) {
	return m.updateFunc(ctx, kind, id, payload)
}

func (m *mockAPI) Delete(ctx context.Context, kind api.Kind, id string) error {
	return m.deleteFunc(ctx, kind, id)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	n.failures = append(n.failures, msg)
	n.mu.Unlock()
}

type staticConfirmer bool

func (c staticConfirmer) Confirm(string) bool { return bool(c) }

func jsonPayload(t *testing.T, v any) *api.Payload {
	t.Helper()
	p, err := api.JSONPayload(v)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPanel_Refresh(t *testing.T) {
	m := &mockAPI{
		listFunc: func(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
			return []map[string]any{{"id": "1", "title": "old"}}, nil
		},
	}
	p := NewPanel(api.KindAbout, m, &recordingNotifier{})

	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	records := p.Records()
	if len(records) != 1 || records[0]["title"] != "old" {
		t.Errorf("records = %+v", records)
	}
	if p.Busy() {
		t.Error("Busy = true after Refresh returned")
	}
}

// 作成の応答レコードがそのまま一覧へ追加されることを検証
func TestPanel_SubmitCreateAppendsResponse(t *testing.T) {
	m := &mockAPI{
		createFunc: func(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error) {
			return map[string]any{"id": "srv-1", "title": "new", "content": "sanitized"}, nil
		},
	}
	n := &recordingNotifier{}
	p := NewPanel(api.KindAbout, m, n)

	if err := p.Submit(context.Background(), "", jsonPayload(t, map[string]string{"title": "new"})); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	records := p.Records()
	if len(records) != 1 {
		t.Fatalf("records = %+v", records)
	}
	if records[0]["id"] != "srv-1" || records[0]["content"] != "sanitized" {
		t.Errorf("record = %+v, want server response", records[0])
	}
	if len(n.successes) != 1 {
		t.Errorf("successes = %v", n.successes)
	}
}

// 更新でサーバー応答の値が既存レコードより優先されることを検証
func TestPanel_SubmitUpdateMergesResponseWins(t *testing.T) {
	m := &mockAPI{
		listFunc: func(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
			return []map[string]any{
				{"id": "1", "title": "old", "extra": "kept"},
				{"id": "2", "title": "other"},
			}, nil
		},
		updateFunc: func(ctx context.Context, kind api.Kind, id string, payload *api.Payload) (map[string]any, error) {
			return map[string]any{"id": "1", "title": "updated"}, nil
		},
	}
	p := NewPanel(api.KindAbout, m, &recordingNotifier{})
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := p.Submit(context.Background(), "1", jsonPayload(t, map[string]string{"title": "updated"})); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	records := p.Records()
	if len(records) != 2 {
		t.Fatalf("records = %+v", records)
	}
	if records[0]["title"] != "updated" {
		t.Errorf("title = %v, response value should win", records[0]["title"])
	}
	if records[0]["extra"] != "kept" {
		t.Errorf("extra = %v, untouched keys should survive", records[0]["extra"])
	}
	if records[1]["title"] != "other" {
		t.Errorf("unrelated record changed: %+v", records[1])
	}
}

// IDを含まない応答では一覧を取り直すことを検証
func TestPanel_SubmitAmbiguousResponseRefetches(t *testing.T) {
	m := &mockAPI{
		listFunc: func(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
			return []map[string]any{{"id": "fresh"}}, nil
		},
		createFunc: func(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error) {
			return map[string]any{"status": "ok"}, nil
		},
	}
	p := NewPanel(api.KindAbout, m, &recordingNotifier{})

	if err := p.Submit(context.Background(), "", jsonPayload(t, map[string]string{})); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if m.listCalls != 1 {
		t.Errorf("listCalls = %d, want re-fetch", m.listCalls)
	}
	records := p.Records()
	if len(records) != 1 || records[0]["id"] != "fresh" {
		t.Errorf("records = %+v", records)
	}
}

// 成功ステータスのボディを読めなかった保存は失敗扱いにせず
// 一覧を取り直すことを検証
func TestPanel_SubmitUndecodableSuccessRefetches(t *testing.T) {
	m := &mockAPI{
		listFunc: func(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
			return []map[string]any{{"id": "fresh"}}, nil
		},
		createFunc: func(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error) {
			return nil, fmt.Errorf("%w: invalid character '<'", api.ErrAmbiguousSuccess)
		},
	}
	n := &recordingNotifier{}
	p := NewPanel(api.KindAbout, m, n)

	if err := p.Submit(context.Background(), "", jsonPayload(t, map[string]string{})); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if m.listCalls != 1 {
		t.Errorf("listCalls = %d, want re-fetch", m.listCalls)
	}
	records := p.Records()
	if len(records) != 1 || records[0]["id"] != "fresh" {
		t.Errorf("records = %+v", records)
	}
	if len(n.failures) != 0 {
		t.Errorf("failures = %v, ambiguous save should not notify failure", n.failures)
	}
}

func TestPanel_SubmitFailureNotifies(t *testing.T) {
	m := &mockAPI{
		createFunc: func(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error) {
			return nil, &api.APIError{StatusCode: 400, Message: "title required"}
		},
	}
	n := &recordingNotifier{}
	p := NewPanel(api.KindAbout, m, n)

	if err := p.Submit(context.Background(), "", jsonPayload(t, map[string]string{})); err == nil {
		t.Fatal("expected error")
	}
	if len(n.failures) != 1 {
		t.Fatalf("failures = %v", n.failures)
	}
	if len(p.Records()) != 0 {
		t.Error("failed submit should not change records")
	}
}

func TestPanel_DeleteRemovesRecord(t *testing.T) {
	m := &mockAPI{
		listFunc: func(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
			return []map[string]any{{"id": "1"}, {"id": "2"}}, nil
		},
		deleteFunc: func(ctx context.Context, kind api.Kind, id string) error {
			if id != "1" {
				t.Errorf("id = %q", id)
			}
			return nil
		},
	}
	p := NewPanel(api.KindAbout, m, &recordingNotifier{})
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := p.Delete(context.Background(), "1", staticConfirmer(true)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	records := p.Records()
	if len(records) != 1 || records[0]["id"] != "2" {
		t.Errorf("records = %+v", records)
	}
}

// 確認を拒否したらAPIを呼ばないことを検証
func TestPanel_DeleteDeclined(t *testing.T) {
	m := &mockAPI{
		deleteFunc: func(ctx context.Context, kind api.Kind, id string) error {
			t.Error("delete should not be called")
			return nil
		},
	}
	p := NewPanel(api.KindAbout, m, &recordingNotifier{})

	if err := p.Delete(context.Background(), "1", staticConfirmer(false)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

// 操作中の二重実行がErrBusyで拒否されることを検証
func TestPanel_BusySerializesOperations(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := &mockAPI{
		listFunc: func(ctx context.Context, kind api.Kind) ([]map[string]any, error) {
			close(started)
			<-release
			return nil, nil
		},
	}
	p := NewPanel(api.KindAbout, m, &recordingNotifier{})

	done := make(chan error)
	go func() { done <- p.Refresh(context.Background()) }()
	<-started

	if !p.Busy() {
		t.Error("Busy = false during Refresh")
	}
	if err := p.Submit(context.Background(), "", jsonPayload(t, map[string]string{})); !errors.Is(err, ErrBusy) {
		t.Errorf("Submit = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Refresh: %v", err)
	}
}
