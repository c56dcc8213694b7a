package blog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hitoshi/folio/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Content-Typeとボディによるフィード判定を検証
func TestIsDirectFeed(t *testing.T) {
	atomBody := []byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	rssBody := []byte(`<?xml version="1.0"?><rss version="2.0"></rss>`)
	htmlBody := []byte(`<!DOCTYPE html><html><head></head></html>`)

	tests := []struct {
		name        string
		contentType string
		body        []byte
		want        bool
	}{
		{"RSS Content-Type", "application/rss+xml", rssBody, true},
		{"Atom Content-Type（charset付き）", "application/atom+xml; charset=utf-8", atomBody, true},
		{"汎用XMLでRSSボディ", "text/xml", rssBody, true},
		{"汎用XMLでAtomボディ", "application/xml", atomBody, true},
		{"HTMLページ", "text/html", htmlBody, false},
		{"汎用XMLで非フィード", "text/xml", []byte(`<?xml version="1.0"?><sitemap></sitemap>`), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDirectFeed(tt.contentType, tt.body); got != tt.want {
				t.Errorf("IsDirectFeed(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

// HTMLのheadからフィードリンクが検出され相対URLが解決されることを検証
func TestDiscoverFeedURL(t *testing.T) {
	htmlBody := []byte(`<!DOCTYPE html>
<html>
<head>
	<title>blog</title>
	<link rel="stylesheet" href="/style.css">
	<link rel="alternate" type="application/rss+xml" href="/feed.xml">
</head>
<body><a href="/other.xml">not this</a></body>
</html>`)

	got := DiscoverFeedURL(htmlBody, "https://blog.example.com/index.html")
	if got != "https://blog.example.com/feed.xml" {
		t.Errorf("DiscoverFeedURL = %q", got)
	}
}

// フィードリンクのないページで空文字列が返ることを検証
func TestDiscoverFeedURL_NoLink(t *testing.T) {
	htmlBody := []byte(`<html><head><title>x</title></head><body></body></html>`)
	if got := DiscoverFeedURL(htmlBody, "https://example.com/"); got != "" {
		t.Errorf("DiscoverFeedURL = %q, want empty", got)
	}
}

// mockFetcher はPostFetcherのモック実装
type mockFetcher struct {
	fetchFunc func(ctx context.Context) ([]*model.BlogPost, error)
}

func (m *mockFetcher) Fetch(ctx context.Context) ([]*model.BlogPost, error) {
	return m.fetchFunc(ctx)
}

// Refresh成功でキャッシュが更新されることを検証
func TestService_Refresh(t *testing.T) {
	posts := []*model.BlogPost{
		{Title: "first", URL: "https://blog.example.com/1", Published: time.Now()},
	}
	svc := NewService(&mockFetcher{
		fetchFunc: func(ctx context.Context) ([]*model.BlogPost, error) {
			return posts, nil
		},
	}, testLogger())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	got, fetchedAt := svc.Posts()
	if len(got) != 1 || got[0].Title != "first" {
		t.Errorf("Posts = %v", got)
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt should be set after a successful refresh")
	}
}

// Refresh失敗で既存キャッシュが維持されることを検証
func TestService_RefreshFailureKeepsCache(t *testing.T) {
	calls := 0
	svc := NewService(&mockFetcher{
		fetchFunc: func(ctx context.Context) ([]*model.BlogPost, error) {
			calls++
			if calls == 1 {
				return []*model.BlogPost{{Title: "cached", URL: "https://x/1"}}, nil
			}
			return nil, errors.New("upstream down")
		},
	}, testLogger())

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh: %v", err)
	}
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("second Refresh should fail")
	}

	got, _ := svc.Posts()
	if len(got) != 1 || got[0].Title != "cached" {
		t.Errorf("cache should survive a failed refresh: %v", got)
	}
}

// 未取得状態で空スライスが返ることを検証
func TestService_PostsBeforeFirstRefresh(t *testing.T) {
	svc := NewService(&mockFetcher{}, testLogger())

	got, fetchedAt := svc.Posts()
	if got == nil || len(got) != 0 {
		t.Errorf("Posts = %v, want empty slice", got)
	}
	if !fetchedAt.IsZero() {
		t.Error("fetchedAt should be zero before the first refresh")
	}
}

// 要約の切り詰めを検証
func TestSummarize(t *testing.T) {
	long := make([]rune, 400)
	for i := range long {
		long[i] = 'あ'
	}
	got := summarize(string(long))
	if len([]rune(got)) != 301 {
		t.Errorf("len = %d, want 301 (300 + ellipsis)", len([]rune(got)))
	}
	if got := summarize("short"); got != "short" {
		t.Errorf("short text should pass through: %q", got)
	}
}
