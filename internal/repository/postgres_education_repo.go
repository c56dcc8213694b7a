package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/folio/internal/model"
)

// PostgresEducationRepo はPostgreSQLを使用した学歴リポジトリ。
type PostgresEducationRepo struct {
	db *sql.DB
}

// NewPostgresEducationRepo はPostgresEducationRepoを生成する。
func NewPostgresEducationRepo(db *sql.DB) *PostgresEducationRepo {
	return &PostgresEducationRepo{db: db}
}

// List は全学歴を開始年月の降順で取得する。
func (r *PostgresEducationRepo) List(ctx context.Context) ([]*model.Education, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, degree, institution, start_month, end_month, description,
		        created_at, updated_at
		 FROM educations ORDER BY start_month DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("学歴の一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	edus := []*model.Education{}
	for rows.Next() {
		e := &model.Education{}
		if err := rows.Scan(
			&e.ID, &e.Degree, &e.Institution,
			&e.Start, &e.End, &e.Description,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("学歴の読み取りに失敗しました: %w", err)
		}
		edus = append(edus, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("学歴の一覧取得に失敗しました: %w", err)
	}

	return edus, nil
}

// FindByID は指定IDの学歴を取得する。見つからない場合はnilを返す。
func (r *PostgresEducationRepo) FindByID(ctx context.Context, id string) (*model.Education, error) {
	e := &model.Education{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, degree, institution, start_month, end_month, description,
		        created_at, updated_at
		 FROM educations WHERE id = $1`,
		id,
	).Scan(
		&e.ID, &e.Degree, &e.Institution,
		&e.Start, &e.End, &e.Description,
		&e.CreatedAt, &e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("学歴の取得に失敗しました: %w", err)
	}

	return e, nil
}

// Create は学歴を作成する。
func (r *PostgresEducationRepo) Create(ctx context.Context, e *model.Education) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO educations (id, degree, institution, start_month,
		                         end_month, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Degree, e.Institution, e.Start,
		e.End, e.Description, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("学歴の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は学歴の全フィールドを置き換える。
func (r *PostgresEducationRepo) Update(ctx context.Context, e *model.Education) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE educations SET
		    degree = $2, institution = $3, start_month = $4,
		    end_month = $5, description = $6, updated_at = $7
		 WHERE id = $1`,
		e.ID, e.Degree, e.Institution, e.Start, e.End, e.Description, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("学歴の更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの学歴を削除する。
func (r *PostgresEducationRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM educations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("学歴の削除に失敗しました: %w", err)
	}
	return nil
}
