package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hitoshi/folio/internal/admin/credstore"
)

func newAppForTest(t *testing.T, baseURL, input string) (*App, *bytes.Buffer) {
	t.Helper()
	return buildApp(t, baseURL, input, nil)
}

// newLoggedInAppは保存済み資格情報を復元した状態のAppを作る。
func newLoggedInApp(t *testing.T, baseURL, input string) (*App, *bytes.Buffer) {
	t.Helper()
	return buildApp(t, baseURL, input, &credstore.Credentials{Username: "admin", Password: "secret"})
}

func buildApp(t *testing.T, baseURL, input string, saved *credstore.Credentials) (*App, *bytes.Buffer) {
	t.Helper()
	store := credstore.NewStore(filepath.Join(t.TempDir(), "auth.json"))
	if saved != nil {
		if err := store.Save(saved); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	var out bytes.Buffer
	a, err := newApp(baseURL, store, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a, &out
}

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { readPassword = orig })
}

func TestApp_LoginFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		if r.URL.Path != "/auth-check" || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	stubPassword(t, "secret")
	a, out := newAppForTest(t, srv.URL, "admin\n")

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !a.loggedIn() {
		t.Error("loggedIn = false")
	}
	if got := a.status(); got != " (admin)" {
		t.Errorf("status = %q", got)
	}
	if !strings.Contains(out.String(), "logged in as admin") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApp_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	stubPassword(t, "wrong")
	a, out := newAppForTest(t, srv.URL, "admin\n")

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected login error")
	}
	if a.loggedIn() {
		t.Error("loggedIn = true after rejected login")
	}
	if !strings.Contains(out.String(), "login failed") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApp_ListPrintsRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/About" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"a1","title":"profile","content":"<p>hi</p>"}]`))
	}))
	t.Cleanup(srv.Close)

	a, out := newAppForTest(t, srv.URL, "")
	if err := a.List(context.Background(), "about"); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !strings.Contains(out.String(), "a1") || !strings.Contains(out.String(), "title=profile") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApp_ListUnknownKind(t *testing.T) {
	a, out := newAppForTest(t, "http://localhost", "")
	if err := a.List(context.Background(), "nope"); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !strings.Contains(out.String(), "unknown kind") {
		t.Errorf("output = %q", out.String())
	}
}

// aboutの作成でフィールドの回答がJSONボディに入ることを検証
func TestApp_CreateAboutSendsPromptedFields(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/About" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		received["id"] = "new-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(received)
	}))
	t.Cleanup(srv.Close)

	// 入力順: title, icon, category, content
	a, out := newLoggedInApp(t, srv.URL, "Profile\nFaUser\nintro\n<p>hello</p>\n")
	if err := a.Create(context.Background(), "about"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if received["title"] != "Profile" || received["content"] != "<p>hello</p>" {
		t.Errorf("received = %+v", received)
	}
	if !strings.Contains(out.String(), "About: saved") {
		t.Errorf("output = %q", out.String())
	}
}

// REPLのコマンド行とプロンプトの回答を同じ入力ストリームから
// 順に読めることを検証
func TestApp_RunSharesReaderWithPrompts(t *testing.T) {
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })

	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		received["id"] = "new-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(received)
	}))
	t.Cleanup(srv.Close)

	a, _ := newLoggedInApp(t, srv.URL, "new about\nProfile\nFaUser\nintro\n<p>hello</p>\nexit\n")
	a.Run(context.Background())

	if received["title"] != "Profile" || received["content"] != "<p>hello</p>" {
		t.Errorf("received = %+v", received)
	}
}

// 削除はyの確認が取れたときだけ実行されることを検証
func TestApp_DeleteConfirmed(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	a, _ := newLoggedInApp(t, srv.URL, "y\n")
	if err := a.Delete(context.Background(), "about", "a1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("server delete not called")
	}
}

func TestApp_DeleteDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			t.Error("delete should not be sent")
		}
	}))
	t.Cleanup(srv.Close)

	a, _ := newLoggedInApp(t, srv.URL, "n\n")
	if err := a.Delete(context.Background(), "about", "a1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

// 必須フィールドが空ならリクエストを出さずに弾くことを検証
func TestApp_CreateMissingRequiredField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	}))
	t.Cleanup(srv.Close)

	// 入力順: title(空), icon, category, content
	a, out := newLoggedInApp(t, srv.URL, "\n\n\n<p>hello</p>\n")
	if err := a.Create(context.Background(), "about"); err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out.String(), "title required") {
		t.Errorf("output = %q", out.String())
	}
}

// techが空のプロジェクトはリクエストを出さずに弾くことを検証
func TestApp_CreateProjectMissingTech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent")
	}))
	t.Cleanup(srv.Close)

	// 入力順: name, description, tech(空), link, github link, image path, file paths
	a, out := newLoggedInApp(t, srv.URL, "folio\nportfolio site\n\n\n\n\n\n")
	if err := a.Create(context.Background(), "projects"); err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out.String(), "tech required") {
		t.Errorf("output = %q", out.String())
	}
}

// 読み取り専用の種別に対する更新系が拒否されることを検証
func TestApp_SocialIsReadOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s request", r.Method)
		}
	}))
	t.Cleanup(srv.Close)

	a, out := newLoggedInApp(t, srv.URL, "")
	if err := a.Create(context.Background(), "social"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := a.Delete(context.Background(), "social", "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !strings.Contains(out.String(), "Social is read-only") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApp_Messages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contact-messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"m1","name":"taro","email":"taro@example.com","message":"hi","created_at":"2026-08-01T00:00:00Z"}]`))
	}))
	t.Cleanup(srv.Close)

	a, out := newLoggedInApp(t, srv.URL, "")
	if err := a.Messages(context.Background(), ""); err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if !strings.Contains(out.String(), "taro <taro@example.com>") {
		t.Errorf("output = %q", out.String())
	}
}

func TestApp_MessagesInvalidLimit(t *testing.T) {
	a, out := newAppForTest(t, "http://localhost", "")
	if err := a.Messages(context.Background(), "abc"); err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if !strings.Contains(out.String(), "invalid limit") {
		t.Errorf("output = %q", out.String())
	}
}
