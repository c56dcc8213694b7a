// Package formは管理クライアントが送信するフォームの組み立てを提供する。
package form

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/hitoshi/folio/internal/admin/api"
)

// ProjectDraftはプロジェクトの作成・更新フォームの入力内容。
// ImagePathとFilePathsはローカルのファイルパスで、空なら
// 該当パートを送信せずサーバー側の既存ファイルが維持される。
type ProjectDraft struct {
	Name        string
	Description string
	// Techはカンマ区切りの技術スタック文字列。
	Tech       string
	Link       string
	GithubLink string
	ImagePath  string
	FilePaths  []string
}

// SplitTechはカンマ区切りの技術スタックを個々の項目に分割する。
// 前後の空白は除去し、空の項目は捨てる。
func SplitTech(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// Encodeはドラフトをmultipart/form-dataのPayloadへ変換する。
// 添付ファイルはこの時点でディスクから読み込む。
func (d *ProjectDraft) Encode() (*api.Payload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        d.Name,
		"description": d.Description,
		"link":        d.Link,
		"github_link": d.GithubLink,
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}
	for _, item := range SplitTech(d.Tech) {
		if err := mw.WriteField("tech", item); err != nil {
			return nil, fmt.Errorf("write tech field: %w", err)
		}
	}

	if d.ImagePath != "" {
		if err := writeFilePart(mw, "image", d.ImagePath); err != nil {
			return nil, err
		}
	}
	for _, path := range d.FilePaths {
		if err := writeFilePart(mw, "files", path); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}
	return &api.Payload{ContentType: mw.FormDataContentType(), Body: buf.Bytes()}, nil
}

func writeFilePart(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	return nil
}
