package content

import (
	"context"
	"fmt"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/repository"
)

// SocialService はSNSリンクの読み取りロジックを提供する。
// リンクの追加・変更はマイグレーションで管理するため書き込みAPIは持たない。
type SocialService struct {
	repo repository.SocialRepository
}

// NewSocialService はSocialServiceの新しいインスタンスを生成する。
func NewSocialService(repo repository.SocialRepository) *SocialService {
	return &SocialService{repo: repo}
}

// List は全SNSリンクを表示順で取得する。
// 未知のアイコン名はフォールバックのFaGlobeに置き換える。
func (s *SocialService) List(ctx context.Context) ([]*model.SocialLink, error) {
	links, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list social links: %w", err)
	}
	for _, l := range links {
		if !isKnownIcon(l.Icon) {
			l.Icon = "FaGlobe"
		}
	}
	return links, nil
}

func isKnownIcon(name string) bool {
	for _, icon := range model.SocialIcons {
		if icon == name {
			return true
		}
	}
	return false
}
