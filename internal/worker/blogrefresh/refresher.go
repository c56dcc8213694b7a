// Package blogrefresh は外部ブログフィードの定期更新処理を提供する。
package blogrefresh

import (
	"context"
	"log/slog"
	"time"
)

// BlogRefresher はブログキャッシュ更新の実行インターフェース。
type BlogRefresher interface {
	Refresh(ctx context.Context) error
}

// RefreshRecorder は更新結果のメトリクス記録インターフェース。
type RefreshRecorder interface {
	RecordBlogRefresh(success bool)
}

// Refresher は一定間隔でブログフィードを取得し直すワーカー。
type Refresher struct {
	service  BlogRefresher
	recorder RefreshRecorder
	logger   *slog.Logger
	timeout  time.Duration
}

// NewRefresher はRefresherの新しいインスタンスを生成する。
// timeoutは1回の更新処理に許す時間。0以下の場合は30秒を使用する。
func NewRefresher(service BlogRefresher, recorder RefreshRecorder, logger *slog.Logger, timeout time.Duration) *Refresher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Refresher{
		service:  service,
		recorder: recorder,
		logger:   logger,
		timeout:  timeout,
	}
}

// Start は指定間隔のティッカーでワーカーを起動する。
// コンテキストがキャンセルされるまで実行を継続する。
func (r *Refresher) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("blog refresher started", slog.Duration("interval", interval))

	// 起動直後に1回実行
	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("blog refresher stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce はブログキャッシュの更新を1回実行し、結果をメトリクスに記録する。
func (r *Refresher) RunOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.service.Refresh(runCtx)
	r.recorder.RecordBlogRefresh(err == nil)
	if err != nil {
		r.logger.Error("blog refresh cycle failed", slog.String("error", err.Error()))
	}
}
