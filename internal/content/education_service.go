package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/repository"
)

// EducationService は学歴のビジネスロジックを提供する。
type EducationService struct {
	repo   repository.EducationRepository
	logger *slog.Logger
}

// NewEducationService はEducationServiceの新しいインスタンスを生成する。
func NewEducationService(repo repository.EducationRepository, logger *slog.Logger) *EducationService {
	return &EducationService{repo: repo, logger: logger}
}

// List は全学歴を開始年月の降順で取得する。
func (s *EducationService) List(ctx context.Context) ([]*model.Education, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list educations: %w", err)
	}
	return items, nil
}

// Create は学歴を検証して保存し、保存された学歴を返す。
func (s *EducationService) Create(ctx context.Context, e *model.Education) (*model.Education, error) {
	if err := validateEducation(e); err != nil {
		return nil, err
	}

	e.ID = uuid.New().String()
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create education: %w", err)
	}

	s.logger.Info("education created", slog.String("id", e.ID), slog.String("institution", e.Institution))
	return e, nil
}

// Update は指定IDの学歴を置き換え、更新後の学歴を返す。
func (s *EducationService) Update(ctx context.Context, id string, e *model.Education) (*model.Education, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find education: %w", err)
	}
	if existing == nil {
		return nil, model.NewNotFoundError("education", id)
	}

	if err := validateEducation(e); err != nil {
		return nil, err
	}

	e.ID = id
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update education: %w", err)
	}

	s.logger.Info("education updated", slog.String("id", id))
	return e, nil
}

// Delete は指定IDの学歴を削除する。
func (s *EducationService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find education: %w", err)
	}
	if existing == nil {
		return model.NewNotFoundError("education", id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete education: %w", err)
	}

	s.logger.Info("education deleted", slog.String("id", id))
	return nil
}

// validateEducation は必須フィールドと年月形式を検証する。
func validateEducation(e *model.Education) error {
	e.Degree = strings.TrimSpace(e.Degree)
	e.Institution = strings.TrimSpace(e.Institution)
	e.Start = strings.TrimSpace(e.Start)
	e.End = strings.TrimSpace(e.End)
	e.Description = strings.TrimSpace(e.Description)

	if e.Degree == "" {
		return model.NewValidationError("degree")
	}
	if e.Institution == "" {
		return model.NewValidationError("institution")
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
