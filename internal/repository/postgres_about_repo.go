package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/folio/internal/model"
)

// PostgresAboutRepo はPostgreSQLを使用した自己紹介項目リポジトリ。
type PostgresAboutRepo struct {
	db *sql.DB
}

// NewPostgresAboutRepo はPostgresAboutRepoを生成する。
func NewPostgresAboutRepo(db *sql.DB) *PostgresAboutRepo {
	return &PostgresAboutRepo{db: db}
}

// List は全項目を作成順で取得する。
func (r *PostgresAboutRepo) List(ctx context.Context) ([]*model.AboutItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, icon, category, content, created_at, updated_at
		 FROM abouts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("自己紹介項目の一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	items := []*model.AboutItem{}
	for rows.Next() {
		item := &model.AboutItem{}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Icon, &item.Category,
			&item.Content, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("自己紹介項目の読み取りに失敗しました: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("自己紹介項目の一覧取得に失敗しました: %w", err)
	}

	return items, nil
}

// FindByID は指定IDの項目を取得する。見つからない場合はnilを返す。
func (r *PostgresAboutRepo) FindByID(ctx context.Context, id string) (*model.AboutItem, error) {
	item := &model.AboutItem{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, icon, category, content, created_at, updated_at
		 FROM abouts WHERE id = $1`,
		id,
	).Scan(
		&item.ID, &item.Title, &item.Icon, &item.Category,
		&item.Content, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("自己紹介項目の取得に失敗しました: %w", err)
	}

	return item, nil
}

// Create は項目を作成する。
func (r *PostgresAboutRepo) Create(ctx context.Context, item *model.AboutItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO abouts (id, title, icon, category, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Title, item.Icon, item.Category,
		item.Content, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("自己紹介項目の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は項目の全フィールドを置き換える。
func (r *PostgresAboutRepo) Update(ctx context.Context, item *model.AboutItem) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE abouts SET
		    title = $2, icon = $3, category = $4, content = $5, updated_at = $6
		 WHERE id = $1`,
		item.ID, item.Title, item.Icon, item.Category, item.Content, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("自己紹介項目の更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの項目を削除する。
func (r *PostgresAboutRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM abouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("自己紹介項目の削除に失敗しました: %w", err)
	}
	return nil
}
