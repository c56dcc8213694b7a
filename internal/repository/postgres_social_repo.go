package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/folio/internal/model"
)

// PostgresSocialRepo はPostgreSQLを使用したSNSリンクリポジトリ。
// 管理APIには読み取りのみを公開する。
type PostgresSocialRepo struct {
	db *sql.DB
}

// NewPostgresSocialRepo はPostgresSocialRepoを生成する。
func NewPostgresSocialRepo(db *sql.DB) *PostgresSocialRepo {
	return &PostgresSocialRepo{db: db}
}

// List は全SNSリンクを表示順で取得する。
func (r *PostgresSocialRepo) List(ctx context.Context) ([]*model.SocialLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, url, icon FROM socials ORDER BY position, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("SNSリンクの一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	links := []*model.SocialLink{}
	for rows.Next() {
		l := &model.SocialLink{}
		if err := rows.Scan(&l.ID, &l.Name, &l.URL, &l.Icon); err != nil {
			return nil, fmt.Errorf("SNSリンクの読み取りに失敗しました: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SNSリンクの一覧取得に失敗しました: %w", err)
	}

	return links, nil
}
