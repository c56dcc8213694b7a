// Package panelは種別ごとの管理画面を駆動する汎用のCRUDエンジンを提供する。
// サーバーのレコードはスキーマに依存しないmapとして保持し、
// 一覧・作成・更新・削除の一連の操作とローカル状態の同期を担う。
package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hitoshi/folio/internal/admin/api"
)

// RecordAPIはパネルが使うサーバーAPIの操作。
type RecordAPI interface {
	List(ctx context.Context, kind api.Kind) ([]map[string]any, error)
	Create(ctx context.Context, kind api.Kind, payload *api.Payload) (map[string]any, error)
	Update(ctx context.Context, kind api.Kind, id string, payload *api.Payload) (map[string]any, error)
	Delete(ctx context.Context, kind api.Kind, id string) error
}

// Notifierは操作結果の通知先。
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Confirmerは破壊的操作の前の確認に使う。
type Confirmer interface {
	Confirm(prompt string) bool
}

// ErrBusyは実行中の操作がある間に別の操作を要求したことを示す。
var ErrBusy = fmt.Errorf("operation already in progress")

// Panelは1つのコンテンツ種別に対する管理画面の状態を保持する。
type Panel struct {
	kind     api.Kind
	api      RecordAPI
	notifier Notifier

	mu      sync.Mutex
	busy    bool
	records []map[string]any
}

// NewPanelはPanelを生成する。
func NewPanel(kind api.Kind, recordAPI RecordAPI, notifier Notifier) *Panel {
	return &Panel{
		kind:     kind,
		api:      recordAPI,
		notifier: notifier,
		records:  []map[string]any{},
	}
}

// Kindはこのパネルが扱う種別を返す。
func (p *Panel) Kind() api.Kind {
	return p.kind
}

// Recordsは現在保持しているレコード一覧のコピーを返す。
func (p *Panel) Records() []map[string]any {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]map[string]any, len(p.records))
	copy(out, p.records)
	return out
}

// Busyは操作の実行中かどうかを返す。
func (p *Panel) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.busy
}

// beginはbusyフラグを立てる。すでに操作中ならErrBusyを返す。
func (p *Panel) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.busy {
		return ErrBusy
	}
	p.busy = true
	return nil
}

func (p *Panel) end() {
	p.mu.Lock()
	p.busy = false
	p.mu.Unlock()
}

// Refreshはサーバーから一覧を取得してローカル状態を置き換える。
func (p *Panel) Refresh(ctx context.Context) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	records, err := p.api.List(ctx, p.kind)
	if err != nil {
		p.notifier.Failure(fmt.Sprintf("%s: load failed: %v", p.kind.Name, err))
		return err
	}

	p.mu.Lock()
	p.records = records
	p.mu.Unlock()
	return nil
}

// Submitはレコードを作成または更新する。idが空なら作成。
// 作成の応答はサーバーが確定させた完全なレコードとして一覧へ追加し、
// 更新の応答は既存レコードへサーバー側の値を優先して取り込む。
// 応答にIDが含まれない場合はローカル状態を信用せず一覧を取り直す。
func (p *Panel) Submit(ctx context.Context, id string, payload *api.Payload) error {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	var (
		record map[string]any
		err    error
	)
	if id == "" {
		record, err = p.api.Create(ctx, p.kind, payload)
	} else {
		record, err = p.api.Update(ctx, p.kind, id, payload)
	}
	if err != nil {
		// 成功ステータスの応答を読めなかった場合は保存が済んでいる
		// かもしれないので、失敗扱いにせず一覧を取り直す
		if errors.Is(err, api.ErrAmbiguousSuccess) {
			return p.resync(ctx)
		}
		p.notifier.Failure(fmt.Sprintf("%s: save failed: %v", p.kind.Name, err))
		return err
	}

	if recordID(record) == "" {
		return p.resync(ctx)
	}

	p.mu.Lock()
	if id == "" {
		p.records = append(p.records, record)
	} else {
		p.mergeLocked(id, record)
	}
	p.mu.Unlock()

	p.notifier.Success(fmt.Sprintf("%s: saved", p.kind.Name))
	return nil
}

// Deleteは確認の上でレコードを削除する。
func (p *Panel) Delete(ctx context.Context, id string, confirmer Confirmer) error {
	if !confirmer.Confirm(fmt.Sprintf("delete %s record %s?", p.kind.Name, id)) {
		return nil
	}
	if err := p.begin(); err != nil {
		return err
	}
	defer p.end()

	if err := p.api.Delete(ctx, p.kind, id); err != nil {
		p.notifier.Failure(fmt.Sprintf("%s: delete failed: %v", p.kind.Name, err))
		return err
	}

	p.mu.Lock()
	kept := p.records[:0]
	for _, r := range p.records {
		if recordID(r) != id {
			kept = append(kept, r)
		}
	}
	p.records = kept
	p.mu.Unlock()

	p.notifier.Success(fmt.Sprintf("%s: deleted", p.kind.Name))
	return nil
}

// resyncはbusyを保持したまま一覧を取り直す。
func (p *Panel) resync(ctx context.Context) error {
	records, err := p.api.List(ctx, p.kind)
	if err != nil {
		p.notifier.Failure(fmt.Sprintf("%s: reload failed: %v", p.kind.Name, err))
		return err
	}
	p.mu.Lock()
	p.records = records
	p.mu.Unlock()
	p.notifier.Success(fmt.Sprintf("%s: saved", p.kind.Name))
	return nil
}

// mergeLockedは一致するIDのレコードへ応答の値を取り込む。
// 同じキーはサーバー応答の値が勝つ。
func (p *Panel) mergeLocked(id string, record map[string]any) {
	for i, existing := range p.records {
		if recordID(existing) != id {
			continue
		}
		merged := make(map[string]any, len(existing)+len(record))
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range record {
			merged[k] = v
		}
		p.records[i] = merged
		return
	}
	// 手元の一覧に無いIDの更新はそのまま追加する
	p.records = append(p.records, record)
}

func recordID(record map[string]any) string {
	id, _ := record["id"].(string)
	return id
}
