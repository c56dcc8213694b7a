package blog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/folio/internal/model"
)

// PostFetcher はフィード取得処理のインターフェース。
type PostFetcher interface {
	Fetch(ctx context.Context) ([]*model.BlogPost, error)
}

// Service は取得済み記事のインメモリキャッシュを保持し、公開APIに提供する。
// データベースには保存せず、プロセス再起動で消える。
type Service struct {
	fetcher PostFetcher
	logger  *slog.Logger

	mu        sync.RWMutex
	posts     []*model.BlogPost
	fetchedAt time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(fetcher PostFetcher, logger *slog.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// Posts はキャッシュ済みの記事一覧と最終取得時刻を返す。
// 一度も取得に成功していない場合は空スライスを返す。
func (s *Service) Posts() ([]*model.BlogPost, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.posts == nil {
		return []*model.BlogPost{}, s.fetchedAt
	}
	return s.posts, s.fetchedAt
}

// Refresh はフィードを取得し直してキャッシュを更新する。
// 取得に失敗した場合は既存のキャッシュを維持する。
func (s *Service) Refresh(ctx context.Context) error {
	posts, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Warn("blog refresh failed", slog.String("error", err.Error()))
		return fmt.Errorf("refresh blog: %w", err)
	}

	s.mu.Lock()
	s.posts = posts
	s.fetchedAt = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("blog cache refreshed", slog.Int("posts", len(posts)))
	return nil
}
