package blog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/hitoshi/folio/internal/model"
	"github.com/hitoshi/folio/internal/security"
)

// maxPosts は公開APIに返す記事数の上限。
const maxPosts = 20

// Fetcher は外部ブログのフィードを取得・パースする。
// フィードURLがHTMLページを指している場合はheadのリンクからフィードを自動検出する。
type Fetcher struct {
	feedURL   string
	ssrfGuard security.SSRFGuardService
	sanitizer security.ContentSanitizerService
	logger    *slog.Logger
	timeout   time.Duration
	maxBody   int64
}

// NewFetcher はFetcherの新しいインスタンスを生成する。
func NewFetcher(
	feedURL string,
	ssrfGuard security.SSRFGuardService,
	sanitizer security.ContentSanitizerService,
	logger *slog.Logger,
	timeout time.Duration,
	maxBody int64,
) *Fetcher {
	return &Fetcher{
		feedURL:   feedURL,
		ssrfGuard: ssrfGuard,
		sanitizer: sanitizer,
		logger:    logger,
		timeout:   timeout,
		maxBody:   maxBody,
	}
}

// Fetch はフィードを取得して記事一覧を返す。
func (f *Fetcher) Fetch(ctx context.Context) ([]*model.BlogPost, error) {
	contentType, body, err := f.get(ctx, f.feedURL)
	if err != nil {
		return nil, err
	}

	// HTMLページだった場合はフィードリンクを検出してもう一度取得する
	if !IsDirectFeed(contentType, body) {
		feedURL := DiscoverFeedURL(body, f.feedURL)
		if feedURL == "" {
			return nil, fmt.Errorf("no feed found at %s", f.feedURL)
		}
		f.logger.Info("blog feed discovered", slog.String("page_url", f.feedURL), slog.String("feed_url", feedURL))

		contentType, body, err = f.get(ctx, feedURL)
		if err != nil {
			return nil, err
		}
		if !IsDirectFeed(contentType, body) {
			return nil, fmt.Errorf("discovered url is not a feed: %s", feedURL)
		}
	}

	parsed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	posts := make([]*model.BlogPost, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}
		post := &model.BlogPost{
			Title:   strings.TrimSpace(item.Title),
			URL:     item.Link,
			Summary: summarize(f.sanitizer.StripTags(item.Description)),
		}
		if item.PublishedParsed != nil {
			post.Published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			post.Published = item.UpdatedParsed.UTC()
		}
		posts = append(posts, post)
		if len(posts) >= maxPosts {
			break
		}
	}
	return posts, nil
}

// get はSSRF検証付きでURLを取得し、Content-Typeとボディを返す。
func (f *Fetcher) get(ctx context.Context, rawURL string) (string, []byte, error) {
	if err := f.ssrfGuard.ValidateURL(rawURL); err != nil {
		return "", nil, fmt.Errorf("validate feed url: %w", err)
	}

	client := f.ssrfGuard.NewSafeClient(f.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Folio/1.0 Blog Fetcher")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html, */*")

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	return resp.Header.Get("Content-Type"), body, nil
}

// summarize は要約を300文字に切り詰める。
func summarize(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= 300 {
		return text
	}
	return string(runes[:300]) + "…"
}
