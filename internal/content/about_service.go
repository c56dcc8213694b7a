// Package content はポートフォリオの各セクション（自己紹介・経歴・学歴・SNS）の
// ビジネスロジックを提供する。
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/repository"
	"github.com/hitoshi/folio/internal/security"
)

// AboutService は自己紹介項目のビジネスロジックを提供する。
type AboutService struct {
	repo      repository.AboutRepository
	sanitizer security.ContentSanitizerService
	logger    *slog.Logger
}

// NewAboutService はAboutServiceの新しいインスタンスを生成する。
func NewAboutService(repo repository.AboutRepository, sanitizer security.ContentSanitizerService, logger *slog.Logger) *AboutService {
	return &AboutService{
		repo:      repo,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// List は全項目を取得する。
func (s *AboutService) List(ctx context.Context) ([]*model.AboutItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list about items: %w", err)
	}
	return items, nil
}

// Create は項目を検証・サニタイズして保存し、保存された項目を返す。
// IDはサーバー側で採番する。
func (s *AboutService) Create(ctx context.Context, item *model.AboutItem) (*model.AboutItem, error) {
	if err := s.normalize(item); err != nil {
		return nil, err
	}

	item.ID = uuid.New().String()
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create about item: %w", err)
	}

	s.logger.Info("about item created", slog.String("id", item.ID), slog.String("title", item.Title))
	return item, nil
}

// Update は指定IDの項目を置き換え、更新後の項目を返す。
func (s *AboutService) Update(ctx context.Context, id string, item *model.AboutItem) (*model.AboutItem, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find about item: %w", err)
	}
	if existing == nil {
		return nil, model.NewNotFoundError("about item", id)
	}

	if err := s.normalize(item); err != nil {
		return nil, err
	}

	item.ID = id
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update about item: %w", err)
	}

	s.logger.Info("about item updated", slog.String("id", id))
	return item, nil
}

// Delete は指定IDの項目を削除する。
func (s *AboutService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find about item: %w", err)
	}
	if existing == nil {
		return model.NewNotFoundError("about item", id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete about item: %w", err)
	}

	s.logger.Info("about item deleted", slog.String("id", id))
	return nil
}

// normalize は必須フィールドを検証し、Contentをサニタイズする。
func (s *AboutService) normalize(item *model.AboutItem) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Icon = strings.TrimSpace(item.Icon)
	item.Category = strings.TrimSpace(item.Category)

	if item.Title == "" {
		return model.NewValidationError("title")
	}
	if strings.TrimSpace(item.Content) == "" {
		return model.NewValidationError("content")
	}

	item.Content = s.sanitizer.Sanitize(item.Content)
	return nil
}
