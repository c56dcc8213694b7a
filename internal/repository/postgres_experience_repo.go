package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/folio/internal/model"
)

// PostgresExperienceRepo はPostgreSQLを使用した職務経歴リポジトリ。
type PostgresExperienceRepo struct {
	db *sql.DB
}

// NewPostgresExperienceRepo はPostgresExperienceRepoを生成する。
func NewPostgresExperienceRepo(db *sql.DB) *PostgresExperienceRepo {
	return &PostgresExperienceRepo{db: db}
}

// List は全経歴を開始年月の降順で取得する。
func (r *PostgresExperienceRepo) List(ctx context.Context) ([]*model.Experience, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, company, location, start_month, end_month, description,
		        created_at, updated_at
		 FROM experiences ORDER BY start_month DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("職務経歴の一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	exps := []*model.Experience{}
	for rows.Next() {
		e := &model.Experience{}
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Company, &e.Location,
			&e.Start, &e.End, &e.Description,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("職務経歴の読み取りに失敗しました: %w", err)
		}
		exps = append(exps, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("職務経歴の一覧取得に失敗しました: %w", err)
	}

	return exps, nil
}

// FindByID は指定IDの経歴を取得する。見つからない場合はnilを返す。
func (r *PostgresExperienceRepo) FindByID(ctx context.Context, id string) (*model.Experience, error) {
	e := &model.Experience{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, company, location, start_month, end_month, description,
		        created_at, updated_at
		 FROM experiences WHERE id = $1`,
		id,
	).Scan(
		&e.ID, &e.Title, &e.Company, &e.Location,
		&e.Start, &e.End, &e.Description,
		&e.CreatedAt, &e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("職務経歴の取得に失敗しました: %w", err)
	}

	return e, nil
}

// Create は経歴を作成する。
func (r *PostgresExperienceRepo) Create(ctx context.Context, e *model.Experience) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO experiences (id, title, company, location, start_month,
		                          end_month, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Title, e.Company, e.Location, e.Start,
		e.End, e.Description, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("職務経歴の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は経歴の全フィールドを置き換える。
func (r *PostgresExperienceRepo) Update(ctx context.Context, e *model.Experience) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE experiences SET
		    title = $2, company = $3, location = $4, start_month = $5,
		    end_month = $6, description = $7, updated_at = $8
		 WHERE id = $1`,
		e.ID, e.Title, e.Company, e.Location, e.Start,
		e.End, e.Description, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("職務経歴の更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの経歴を削除する。
func (r *PostgresExperienceRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("職務経歴の削除に失敗しました: %w", err)
	}
	return nil
}
