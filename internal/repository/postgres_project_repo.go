package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/folio/internal/model"
)

// PostgresProjectRepo はPostgreSQLを使用した制作物リポジトリ。
// techとfilesはtext[]カラムに格納し、pq.Arrayで読み書きする。
type PostgresProjectRepo struct {
	db *sql.DB
}

// NewPostgresProjectRepo はPostgresProjectRepoを生成する。
func NewPostgresProjectRepo(db *sql.DB) *PostgresProjectRepo {
	return &PostgresProjectRepo{db: db}
}

// List は全制作物を作成順で取得する。
func (r *PostgresProjectRepo) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, tech, link, github_link, image, files,
		        created_at, updated_at
		 FROM projects ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("制作物の一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	projects := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("制作物の一覧取得に失敗しました: %w", err)
	}

	return projects, nil
}

// FindByID は指定IDの制作物を取得する。見つからない場合はnilを返す。
func (r *PostgresProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, tech, link, github_link, image, files,
		        created_at, updated_at
		 FROM projects WHERE id = $1`,
		id,
	)

	p, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Create は制作物を作成する。
func (r *PostgresProjectRepo) Create(ctx context.Context, p *model.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, description, tech, link, github_link,
		                       image, files, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.Description, pq.Array(p.Tech), p.Link, p.GithubLink,
		p.Image, pq.Array(p.Files), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("制作物の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は制作物の全フィールドを置き換える。
func (r *PostgresProjectRepo) Update(ctx context.Context, p *model.Project) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET
		    name = $2, description = $3, tech = $4, link = $5,
		    github_link = $6, image = $7, files = $8, updated_at = $9
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, pq.Array(p.Tech), p.Link,
		p.GithubLink, p.Image, pq.Array(p.Files), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("制作物の更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDの制作物を削除する。
func (r *PostgresProjectRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("制作物の削除に失敗しました: %w", err)
	}
	return nil
}

// scanProject は1行分のスキャンを共通化する。
// sql.ErrNoRowsは呼び出し元で判定できるようそのまま返す。
func scanProject(scan func(dest ...any) error) (*model.Project, error) {
	p := &model.Project{}
	var tech, files pq.StringArray

	err := scan(
		&p.ID, &p.Name, &p.Description, &tech, &p.Link, &p.GithubLink,
		&p.Image, &files, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("制作物の読み取りに失敗しました: %w", err)
	}

	p.Tech = []string(tech)
	p.Files = []string(files)
	return p, nil
}
