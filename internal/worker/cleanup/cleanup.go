// Package cleanup は保持期間を超過した問い合わせメッセージと
// どのレコードからも参照されなくなったアップロードファイルの削除ジョブを提供する。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Querier はSQLの実行を抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// CleanupJob は日次実行のメンテナンスジョブ。冪等な削除処理を保証する。
type CleanupJob struct {
	db            Querier
	logger        *slog.Logger
	uploadDir     string
	RetentionDays int // 問い合わせメッセージの保持日数（デフォルト: 365）
}

// NewCleanupJob は新しいCleanupJobを生成する。
// uploadDirが空の場合、孤児ファイルの削除はスキップする。
func NewCleanupJob(db Querier, logger *slog.Logger, uploadDir string) *CleanupJob {
	return &CleanupJob{
		db:            db,
		logger:        logger,
		uploadDir:     uploadDir,
		RetentionDays: 365,
	}
}

// Run は期限切れメッセージの削除と孤児アップロードの削除を順に実行する。
func (j *CleanupJob) Run(ctx context.Context) error {
	if err := j.pruneContactMessages(ctx); err != nil {
		return err
	}
	if j.uploadDir != "" {
		if err := j.pruneOrphanUploads(ctx); err != nil {
			return err
		}
	}
	return nil
}

// pruneContactMessages は保持期間を超過した問い合わせメッセージを削除する。
func (j *CleanupJob) pruneContactMessages(ctx context.Context) error {
	start := time.Now()

	interval := fmt.Sprintf("%d days", j.RetentionDays)
	result, err := j.db.ExecContext(ctx,
		`DELETE FROM contact_messages WHERE created_at < now() - $1::interval`, interval)
	if err != nil {
		j.logger.Error("contact message cleanup failed",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.RetentionDays),
		)
		return fmt.Errorf("prune contact messages: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read deleted count: %w", err)
	}

	j.logger.Info("contact message cleanup completed",
		slog.Int64("deleted_count", deleted),
		slog.Int("retention_days", j.RetentionDays),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// pruneOrphanUploads はどの制作物のimage/filesからも参照されていない
// アップロードファイルをディスクから削除する。
// レース回避のため、更新直後のファイルを消さないよう1時間以内に
// 作成されたファイルはスキップする。
func (j *CleanupJob) pruneOrphanUploads(ctx context.Context) error {
	referenced, err := j.referencedFilenames(ctx)
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(j.uploadDir)
	if err != nil {
		return fmt.Errorf("read upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < time.Hour {
			continue
		}
		if err := os.Remove(filepath.Join(j.uploadDir, entry.Name())); err != nil {
			j.logger.Warn("failed to remove orphan upload",
				slog.String("file", entry.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		removed++
	}

	j.logger.Info("orphan upload cleanup completed", slog.Int("removed_count", removed))
	return nil
}

// referencedFilenames は制作物レコードが参照する全ファイル名の集合を返す。
func (j *CleanupJob) referencedFilenames(ctx context.Context) (map[string]bool, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT image, files FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("list project file references: %w", err)
	}
	defer rows.Close()

	referenced := make(map[string]bool)
	for rows.Next() {
		var image sql.NullString
		var files pq.StringArray
		if err := rows.Scan(&image, &files); err != nil {
			return nil, fmt.Errorf("scan project files: %w", err)
		}
		if image.Valid {
			addFilename(referenced, image.String)
		}
		for _, u := range files {
			addFilename(referenced, u)
		}
	}
	return referenced, rows.Err()
}

func addFilename(set map[string]bool, publicURL string) {
	idx := strings.LastIndex(publicURL, "/uploads/")
	if idx < 0 {
		return
	}
	name := publicURL[idx+len("/uploads/"):]
	if name != "" {
		set[name] = true
	}
}
