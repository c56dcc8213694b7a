// Package notifyは管理クライアントの操作結果をユーザーへ表示する。
package notify

import (
	"fmt"
	"io"
)

// WriterNotifierは通知を書き込み先へ1行ずつ出力する。
type WriterNotifier struct {
	w io.Writer
}

// NewWriterNotifierはWriterNotifierを生成する。
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Successは成功メッセージを出力する。
func (n *WriterNotifier) Success(msg string) {
	fmt.Fprintf(n.w, "ok: %s\n", msg)
}

// Failureは失敗メッセージを出力する。
func (n *WriterNotifier) Failure(msg string) {
	fmt.Fprintf(n.w, "error: %s\n", msg)
}
