package content

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/repository"
)

// monthPattern は経歴・学歴の年月フィールドの形式（YYYY-MM）。
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ExperienceService は職務経歴のビジネスロジックを提供する。
type ExperienceService struct {
	repo   repository.ExperienceRepository
	logger *slog.Logger
}

// NewExperienceService はExperienceServiceの新しいインスタンスを生成する。
func NewExperienceService(repo repository.ExperienceRepository, logger *slog.Logger) *ExperienceService {
	return &ExperienceService{repo: repo, logger: logger}
}

// List は全経歴を開始年月の降順で取得する。
func (s *ExperienceService) List(ctx context.Context) ([]*model.Experience, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	return items, nil
}

// Create は経歴を検証して保存し、保存された経歴を返す。
func (s *ExperienceService) Create(ctx context.Context, e *model.Experience) (*model.Experience, error) {
	if err := validateExperience(e); err != nil {
		return nil, err
	}

	e.ID = uuid.New().String()
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}

	s.logger.Info("experience created", slog.String("id", e.ID), slog.String("company", e.Company))
	return e, nil
}

// Update は指定IDの経歴を置き換え、更新後の経歴を返す。
func (s *ExperienceService) Update(ctx context.Context, id string, e *model.Experience) (*model.Experience, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find experience: %w", err)
	}
	if existing == nil {
		return nil, model.NewNotFoundError("experience", id)
	}

	if err := validateExperience(e); err != nil {
		return nil, err
	}

	e.ID = id
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}

	s.logger.Info("experience updated", slog.String("id", id))
	return e, nil
}

// Delete は指定IDの経歴を削除する。
func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find experience: %w", err)
	}
	if existing == nil {
		return model.NewNotFoundError("experience", id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}

	s.logger.Info("experience deleted", slog.String("id", id))
	return nil
}

// validateExperience は必須フィールドと年月形式を検証する。
// Endは空の場合在職中として許可する。
func validateExperience(e *model.Experience) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Company = strings.TrimSpace(e.Company)
	e.Location = strings.TrimSpace(e.Location)
	e.Start = strings.TrimSpace(e.Start)
	e.End = strings.TrimSpace(e.End)
	e.Description = strings.TrimSpace(e.Description)

	if e.Title == "" {
		return model.NewValidationError("title")
	}
	if e.Company == "" {
		return model.NewValidationError("company")
	}
	if e.Description == "" {
		return model.NewValidationError("description")
	}
	if e.Start == "" {
		return model.NewValidationError("start")
	}
	if !monthPattern.MatchString(e.Start) {
		return model.NewInvalidRequestError("start must be YYYY-MM")
	}
	if e.End != "" && !monthPattern.MatchString(e.End) {
		return model.NewInvalidRequestError("end must be YYYY-MM")
	}
	return nil
}
