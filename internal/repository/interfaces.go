// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/folio/internal/model"
)

// AboutRepository は自己紹介項目の永続化インターフェース。
type AboutRepository interface {
	// List は全項目を作成順で取得する。
	List(ctx context.Context) ([]*model.AboutItem, error)
	// FindByID は指定IDの項目を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.AboutItem, error)
	// Create は項目を作成する。
	Create(ctx context.Context, item *model.AboutItem) error
	// Update は項目の全フィールドを置き換える。
	Update(ctx context.Context, item *model.AboutItem) error
	// DeleteByID は指定IDの項目を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// ProjectRepository は制作物の永続化インターフェース。
type ProjectRepository interface {
	// List は全制作物を作成順で取得する。
	List(ctx context.Context) ([]*model.Project, error)
	// FindByID は指定IDの制作物を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Project, error)
	// Create は制作物を作成する。
	Create(ctx context.Context, p *model.Project) error
	// Update は制作物の全フィールドを置き換える。
	Update(ctx context.Context, p *model.Project) error
	// DeleteByID は指定IDの制作物を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// ExperienceRepository は職務経歴の永続化インターフェース。
type ExperienceRepository interface {
	// List は全経歴を開始年月の降順で取得する。
	List(ctx context.Context) ([]*model.Experience, error)
	// FindByID は指定IDの経歴を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Experience, error)
	// Create は経歴を作成する。
	Create(ctx context.Context, e *model.Experience) error
	// Update は経歴の全フィールドを置き換える。
	Update(ctx context.Context, e *model.Experience) error
	// DeleteByID は指定IDの経歴を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// EducationRepository は学歴の永続化インターフェース。
type EducationRepository interface {
	// List は全学歴を開始年月の降順で取得する。
	List(ctx context.Context) ([]*model.Education, error)
	// FindByID は指定IDの学歴を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Education, error)
	// Create は学歴を作成する。
	Create(ctx context.Context, e *model.Education) error
	// Update は学歴の全フィールドを置き換える。
	Update(ctx context.Context, e *model.Education) error
	// DeleteByID は指定IDの学歴を削除する。
	DeleteByID(ctx context.Context, id string) error
}

// SocialRepository はSNSリンクの永続化インターフェース。
// 管理APIは読み取りのみ公開するため、書き込み操作は持たない（行はマイグレーション/SQLで管理する）。
type SocialRepository interface {
	// List は全SNSリンクを表示順で取得する。
	List(ctx context.Context) ([]*model.SocialLink, error)
}

// ContactRepository は問い合わせメッセージの永続化インターフェース。
type ContactRepository interface {
	// Create はメッセージを保存する。
	Create(ctx context.Context, msg *model.ContactMessage) error
	// ListRecent は新しい順に最大limit件を取得する。
	ListRecent(ctx context.Context, limit int) ([]*model.ContactMessage, error)
}
