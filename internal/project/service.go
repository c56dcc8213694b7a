// Package project は制作物のビジネスロジックを提供する。
// 制作物の作成・更新はマルチパートフォームで受け取り、
// 画像と添付ファイルの保存を伴う。
package project

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/repository"
)

// UploadStore はアップロードファイルの保存先インターフェース。
type UploadStore interface {
	// Save はファイルを保存し公開URLを返す。
	Save(fh *multipart.FileHeader) (string, error)
	// SaveAll は複数ファイルを保存し公開URLのスライスを返す。
	SaveAll(fhs []*multipart.FileHeader) ([]string, error)
	// Remove は公開URLに対応するファイルを削除する。
	Remove(publicURL string)
}

// Form はマルチパートフォームから取り出した制作物の入力を表す。
// Techは繰り返しフィールドまたはカンマ区切りの単一値のどちらでも受け付ける。
type Form struct {
	Name        string
	Description string
	Tech        []string
	Link        string
	GithubLink  string
	Image       *multipart.FileHeader
	Files       []*multipart.FileHeader
}

// UploadRecorder は保存に成功したアップロードの計測先。
type UploadRecorder interface {
	RecordUpload(bytes int64)
}

// Service は制作物のビジネスロジックを提供する。
type Service struct {
	repo     repository.ProjectRepository
	store    UploadStore
	recorder UploadRecorder
	logger   *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。recorderはnil可。
func NewService(repo repository.ProjectRepository, store UploadStore, recorder UploadRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, store: store, recorder: recorder, logger: logger}
}

// List は全制作物を取得する。
func (s *Service) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Create はフォーム入力から制作物を作成し、保存された制作物を返す。
// 画像・添付ファイルを保存してから永続化する。永続化に失敗した場合は
// 保存したファイルを削除する。
func (s *Service) Create(ctx context.Context, form *Form) (*model.Project, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	p := &model.Project{
		ID:          uuid.New().String(),
		Name:        form.Name,
		Description: form.Description,
		Tech:        form.Tech,
		Link:        form.Link,
		GithubLink:  form.GithubLink,
		Files:       []string{},
	}

	if form.Image != nil {
		url, err := s.store.Save(form.Image)
		if err != nil {
			return nil, fmt.Errorf("save project image: %w", err)
		}
		p.Image = url
	}
	if len(form.Files) > 0 {
		urls, err := s.store.SaveAll(form.Files)
		if err != nil {
			s.removeAll(p.Image)
			return nil, fmt.Errorf("save project files: %w", err)
		}
		p.Files = urls
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.removeAll(p.Image)
		s.removeAll(p.Files...)
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.recordUploads(form.Image, form.Files)

	s.logger.Info("project created", slog.String("id", p.ID), slog.String("name", p.Name))
	return p, nil
}

// Update は指定IDの制作物を置き換え、更新後の制作物を返す。
// 画像は新しい画像パートがある場合のみ差し替える。
// 添付ファイルは1つ以上のfilesパートがある場合のみ集合ごと置き換え、
// パートがなければ既存の集合を維持する。
func (s *Service) Update(ctx context.Context, id string, form *Form) (*model.Project, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if existing == nil {
		return nil, model.NewNotFoundError("project", id)
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}

	p := &model.Project{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Tech:        form.Tech,
		Link:        form.Link,
		GithubLink:  form.GithubLink,
		Image:       existing.Image,
		Files:       existing.Files,
	}

	var obsolete []string

	if form.Image != nil {
		url, err := s.store.Save(form.Image)
		if err != nil {
			return nil, fmt.Errorf("save project image: %w", err)
		}
		if existing.Image != "" {
			obsolete = append(obsolete, existing.Image)
		}
		p.Image = url
	}
	if len(form.Files) > 0 {
		urls, err := s.store.SaveAll(form.Files)
		if err != nil {
			return nil, fmt.Errorf("save project files: %w", err)
		}
		obsolete = append(obsolete, existing.Files...)
		p.Files = urls
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	// 永続化が成功してから旧ファイルを消す
	s.removeAll(obsolete...)

	s.recordUploads(form.Image, form.Files)

	s.logger.Info("project updated", slog.String("id", id))
	return p, nil
}

// Delete は指定IDの制作物をレコードとファイルごと削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find project: %w", err)
	}
	if existing == nil {
		return model.NewNotFoundError("project", id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.removeAll(existing.Image)
	s.removeAll(existing.Files...)

	s.logger.Info("project deleted", slog.String("id", id))
	return nil
}

// NormalizeTech は技術タグの入力を正規化する。
// 繰り返しフィールドとカンマ区切りの単一値の両方を受け付け、
// 各要素をトリムして空要素を除いたスライスを返す。
func NormalizeTech(values []string) []string {
	tech := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				tech = append(tech, part)
			}
		}
	}
	return tech
}

// validateForm は必須フィールドを検証し、Techを正規化済みの形に揃える。
func validateForm(form *Form) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	form.Link = strings.TrimSpace(form.Link)
	form.GithubLink = strings.TrimSpace(form.GithubLink)
	form.Tech = NormalizeTech(form.Tech)

	if form.Name == "" {
		return model.NewValidationError("name")
	}
	if form.Description == "" {
		return model.NewValidationError("description")
	}
	if len(form.Tech) == 0 {
		return model.NewValidationError("tech")
	}
	return nil
}

// recordUploads は新しく保存されたパートのバイト数を計測する。
func (s *Service) recordUploads(image *multipart.FileHeader, files []*multipart.FileHeader) {
	if s.recorder == nil {
		return
	}
	if image != nil {
		s.recorder.RecordUpload(image.Size)
	}
	for _, fh := range files {
		s.recorder.RecordUpload(fh.Size)
	}
}

func (s *Service) removeAll(urls ...string) {
	for _, u := range urls {
		if u != "" {
			s.store.Remove(u)
		}
	}
}
