package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore はアップロードファイルをローカルディスクに保存するストア
type DiskStore struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewDiskStore は保存先ディレクトリを作成してストアを初期化する
func NewDiskStore(dir, baseURL string, maxSize int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Dir は保存先ディレクトリを返す
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save はマルチパートのファイルを保存し公開URLを返す。
// ファイル名はUUIDで置き換え、元の拡張子のみ引き継ぐ。
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", fmt.Errorf("file %q exceeds max size %d", fh.Filename, s.maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + sanitizeExt(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	limit := io.Reader(src)
	if s.maxSize > 0 {
		limit = io.LimitReader(src, s.maxSize+1)
	}
	n, err := io.Copy(dst, limit)
	if err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		os.Remove(dst.Name())
		return "", fmt.Errorf("file %q exceeds max size %d", fh.Filename, s.maxSize)
	}

	return s.baseURL + "/uploads/" + name, nil
}

// SaveAll は複数ファイルを保存し公開URLのスライスを返す。
// 途中で失敗した場合は保存済みファイルを削除する。
func (s *DiskStore) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		u, err := s.Save(fh)
		if err != nil {
			for _, saved := range urls {
				s.Remove(saved)
			}
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

// Remove は公開URLに対応するファイルを削除する。該当しないURLは無視する
func (s *DiskStore) Remove(publicURL string) {
	idx := strings.LastIndex(publicURL, "/uploads/")
	if idx < 0 {
		return
	}
	name := publicURL[idx+len("/uploads/"):]
	// ディレクトリトラバーサルを防ぐ
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return
	}
	os.Remove(filepath.Join(s.dir, name))
}

// sanitizeExt は元のファイル名から安全な拡張子を取り出す
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
