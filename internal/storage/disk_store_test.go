package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// マルチパートリクエストからFileHeaderを作るヘルパー
func fileHeader(t *testing.T, field, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	fhs := req.MultipartForm.File[field]
	if len(fhs) != 1 {
		t.Fatalf("file headers = %d, want 1", len(fhs))
	}
	return fhs[0]
}

// 保存したファイルがUUID名でディスクに存在し公開URLが返ることを検証
func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080/", 1<<20)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	fh := fileHeader(t, "image", "photo.PNG", "fake image bytes")
	url, err := store.Save(fh)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want lowercased extension preserved", url)
	}
	if strings.Contains(url, "photo") {
		t.Errorf("url = %q, original filename should not survive", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("saved content = %q", string(data))
	}
}

// サイズ上限を超えるファイルが拒否されることを検証
func TestDiskStore_SaveRejectsOversized(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:8080", 10)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	fh := fileHeader(t, "image", "big.jpg", strings.Repeat("x", 100))
	if _, err := store.Save(fh); err == nil {
		t.Error("oversized file should be rejected")
	}
}

// Removeが公開URLに対応するファイルだけを削除することを検証
func TestDiskStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "http://localhost:8080", 1<<20)
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	url, err := store.Save(fileHeader(t, "f", "a.txt", "hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	store.Remove(url)

	name := url[strings.LastIndex(url, "/")+1:]
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Error("file should be removed")
	}

	// トラバーサルを含むURLは無視される
	store.Remove("http://localhost:8080/uploads/../etc/passwd")
}

// 不審な拡張子が捨てられることを検証
func TestSanitizeExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.png", ".png"},
		{"PHOTO.JPG", ".jpg"},
		{"archive.tar.gz", ".gz"},
		{"noext", ""},
		{"weird.p n g", ""},
		{"x.verylongextension", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExt(tt.filename); got != tt.want {
			t.Errorf("sanitizeExt(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
