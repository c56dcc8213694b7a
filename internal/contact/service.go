// Package contact は問い合わせフォームの受信処理を提供する。
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/repository"
	"github.com/hitoshi/folio/internal/security"
)

// Submission は問い合わせフォームの入力を表す。
// Websiteはハニーポットフィールドで、人間のユーザーには見えない。
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Website string `json:"website"`
}

// Service は問い合わせメッセージの受信ロジックを提供する。
type Service struct {
	repo      repository.ContactRepository
	sanitizer security.ContentSanitizerService
	logger    *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.ContactRepository, sanitizer security.ContentSanitizerService, logger *slog.Logger) *Service {
	return &Service{repo: repo, sanitizer: sanitizer, logger: logger}
}

// Submit は問い合わせを検証して保存する。
// ハニーポットフィールドが埋まっている場合はボットと判定し、
// 保存せずに成功として扱う（falseを返す）。送信側にはエラーを返さない。
func (s *Service) Submit(ctx context.Context, sub *Submission) (bool, error) {
	if strings.TrimSpace(sub.Website) != "" {
		s.logger.Warn("contact submission dropped", slog.String("reason", "honeypot"))
		return false, nil
	}

	if err := validateSubmission(sub); err != nil {
		return false, err
	}

	msg := &model.ContactMessage{
		ID:        uuid.New().String(),
		Name:      s.sanitizer.StripTags(sub.Name),
		Email:     sub.Email,
		Message:   s.sanitizer.StripTags(sub.Message),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return false, fmt.Errorf("save contact message: %w", err)
	}

	s.logger.Info("contact message received", slog.String("id", msg.ID))
	return true, nil
}

// ListRecent は新しい順に最大limit件のメッセージを取得する。
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*model.ContactMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	msgs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return msgs, nil
}

func validateSubmission(sub *Submission) error {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)

	if sub.Name == "" {
		return model.NewValidationError("name")
	}
	if sub.Email == "" {
		return model.NewValidationError("email")
	}
	if _, err := mail.ParseAddress(sub.Email); err != nil {
		return model.NewInvalidRequestError("invalid email address")
	}
	if sub.Message == "" {
		return model.NewValidationError("message")
	}
	return nil
}
