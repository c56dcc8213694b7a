// Package cliはポートフォリオ管理の対話型クライアントを提供する。
// ログイン済みの資格情報はOSのユーザー設定ディレクトリに保存し、
// 次回起動時に復元する。
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hitoshi/folio/internal/admin/api"
	"github.com/hitoshi/folio/internal/admin/credstore"
	"github.com/hitoshi/folio/internal/admin/form"
	"github.com/hitoshi/folio/internal/admin/notify"
	"github.com/hitoshi/folio/internal/admin/panel"
	"github.com/hitoshi/folio/internal/admin/session"
)

// kindFieldsはJSONで送る種別ごとの入力フィールドの並び。
var kindFields = map[string][]string{
	"about":      {"title", "icon", "category", "content"},
	"experience": {"title", "company", "location", "start", "end", "description"},
	"education":  {"degree", "institution", "start", "end", "description"},
}

// kindRequiredは送信前にクライアント側で確認する必須フィールド。
// 欠けていればリクエストを出さずに弾く。projectsはフォーム構造が
// 別物なのでpromptProjectDraft側で確認する。
var kindRequired = map[string][]string{
	"about":      {"title", "content"},
	"experience": {"title", "company", "description", "start"},
	"education":  {"degree", "institution", "description", "start"},
}

// AppはREPLから呼ばれるコマンドの実体。
type App struct {
	session  *session.Session
	client   *api.Client
	notifier panel.Notifier
	panels   map[string]*panel.Panel
	reader   *bufio.Reader
	out      io.Writer
}

// NewAppはAppを生成し、保存済みの資格情報があれば復元する。
func NewApp(baseURL string) (*App, error) {
	path, err := credstore.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve credential path: %w", err)
	}
	return newApp(baseURL, credstore.NewStore(path), os.Stdin, os.Stdout)
}

func newApp(baseURL string, store session.CredentialStore, in io.Reader, out io.Writer) (*App, error) {
	sess := session.NewSession(baseURL, store)
	if _, err := sess.Restore(); err != nil {
		// 壊れた保存ファイルはログイン不能にせず警告に留める
		fmt.Fprintf(out, "warning: could not restore saved credentials: %v\n", err)
	}

	client := api.NewClient(baseURL, sess)
	notifier := notify.NewWriterNotifier(out)

	panels := make(map[string]*panel.Panel)
	for _, kind := range api.Kinds() {
		panels[strings.ToLower(kind.Name)] = panel.NewPanel(kind, client, notifier)
	}

	return &App{
		session:  sess,
		client:   client,
		notifier: notifier,
		panels:   panels,
		reader:   bufio.NewReader(in),
		out:      out,
	}, nil
}

// RunはREPLを起動し、入力の終わりまで回す。
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "folio admin console (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) loggedIn() bool {
	return a.session.LoggedIn()
}

func (a *App) status() string {
	if name := a.session.Username(); name != "" {
		return fmt.Sprintf(" (%s)", name)
	}
	return ""
}

// Loginはユーザー名とパスワードを読み、サーバーで検証してから保存する。
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.notifier.Failure(fmt.Sprintf("login: %v", err))
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.notifier.Failure(fmt.Sprintf("login: %v", err))
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		a.notifier.Failure(fmt.Sprintf("login failed: %v", err))
		return err
	}
	a.notifier.Success(fmt.Sprintf("logged in as %s", username))
	return nil
}

// Logoutは確認の上で保存済みの資格情報を破棄する。
func (a *App) Logout(ctx context.Context) error {
	if !Confirm(a.reader, "log out and forget saved credentials?", a.out) {
		return nil
	}
	if err := a.session.Logout(); err != nil {
		a.notifier.Failure(fmt.Sprintf("logout: %v", err))
		return err
	}
	a.notifier.Success("logged out")
	return nil
}

// Listは種別の一覧をサーバーから取得して表示する。
func (a *App) List(ctx context.Context, kindName string) error {
	p, ok := a.panels[strings.ToLower(kindName)]
	if !ok {
		a.notifier.Failure(fmt.Sprintf("unknown kind: %s", kindName))
		return nil
	}
	if err := p.Refresh(ctx); err != nil {
		return err
	}

	records := p.Records()
	if len(records) == 0 {
		fmt.Fprintf(a.out, "no %s records\n", p.Kind().Name)
		return nil
	}
	for _, record := range records {
		a.printRecord(record)
	}
	return nil
}

// Createは入力を集めて新しいレコードを作成する。
func (a *App) Create(ctx context.Context, kindName string) error {
	return a.submit(ctx, kindName, "")
}

// Editは入力を集めて既存レコードを置き換える。
func (a *App) Edit(ctx context.Context, kindName, id string) error {
	return a.submit(ctx, kindName, id)
}

func (a *App) submit(ctx context.Context, kindName, id string) error {
	name := strings.ToLower(kindName)
	p, ok := a.panels[name]
	if !ok {
		a.notifier.Failure(fmt.Sprintf("unknown kind: %s", kindName))
		return nil
	}
	if p.Kind().ReadOnly {
		a.notifier.Failure(fmt.Sprintf("%s is read-only", p.Kind().Name))
		return nil
	}

	var (
		payload *api.Payload
		err     error
	)
	if p.Kind().Multipart {
		payload, err = a.promptProjectDraft()
	} else {
		payload, err = a.promptFields(name)
	}
	if err != nil {
		a.notifier.Failure(fmt.Sprintf("%s: %v", p.Kind().Name, err))
		return err
	}
	return p.Submit(ctx, id, payload)
}

// Deleteは確認の上でレコードを削除する。
func (a *App) Delete(ctx context.Context, kindName, id string) error {
	p, ok := a.panels[strings.ToLower(kindName)]
	if !ok {
		a.notifier.Failure(fmt.Sprintf("unknown kind: %s", kindName))
		return nil
	}
	if p.Kind().ReadOnly {
		a.notifier.Failure(fmt.Sprintf("%s is read-only", p.Kind().Name))
		return nil
	}
	return p.Delete(ctx, id, replConfirmer{reader: a.reader, out: a.out})
}

// Messagesは問い合わせメッセージを新しい順に表示する。
func (a *App) Messages(ctx context.Context, limitArg string) error {
	limit := 0
	if limitArg != "" {
		n, err := strconv.Atoi(limitArg)
		if err != nil {
			a.notifier.Failure(fmt.Sprintf("invalid limit: %s", limitArg))
			return nil
		}
		limit = n
	}

	messages, err := a.client.ListContactMessages(ctx, limit)
	if err != nil {
		a.notifier.Failure(fmt.Sprintf("messages: %v", err))
		return err
	}
	if len(messages) == 0 {
		fmt.Fprintln(a.out, "no messages")
		return nil
	}
	for _, msg := range messages {
		fmt.Fprintf(a.out, "[%v] %v <%v>\n%v\n\n",
			msg["created_at"], msg["name"], msg["email"], msg["message"])
	}
	return nil
}

// promptFieldsは種別のフィールドを順に尋ねてJSONペイロードを作る。
func (a *App) promptFields(name string) (*api.Payload, error) {
	record := make(map[string]any)
	for _, field := range kindFields[name] {
		value, err := GetSimpleText(a.reader, field, a.out)
		if err != nil {
			return nil, err
		}
		record[field] = value
	}
	for _, field := range kindRequired[name] {
		if record[field] == "" {
			return nil, fmt.Errorf("%s required", field)
		}
	}
	return api.JSONPayload(record)
}

// promptProjectDraftはプロジェクトフォームの入力を集めて
// multipartペイロードを作る。画像とファイルはローカルパスで指定する。
func (a *App) promptProjectDraft() (*api.Payload, error) {
	draft := &form.ProjectDraft{}
	var filePathsRaw string

	prompts := []struct {
		label string
		dst   *string
	}{
		{"name", &draft.Name},
		{"description", &draft.Description},
		{"tech (comma separated)", &draft.Tech},
		{"link", &draft.Link},
		{"github link", &draft.GithubLink},
		{"image path (empty to keep current)", &draft.ImagePath},
		{"file paths, comma separated (empty to keep current)", &filePathsRaw},
	}
	for _, p := range prompts {
		value, err := GetSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return nil, err
		}
		*p.dst = value
	}

	for _, path := range strings.Split(filePathsRaw, ",") {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			draft.FilePaths = append(draft.FilePaths, trimmed)
		}
	}

	if draft.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if draft.Description == "" {
		return nil, fmt.Errorf("description required")
	}
	if len(form.SplitTech(draft.Tech)) == 0 {
		return nil, fmt.Errorf("tech required")
	}
	return draft.Encode()
}

// printRecordはレコードをid先頭の1行で表示する。
func (a *App) printRecord(record map[string]any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v", record["id"])
	for _, key := range []string{"title", "name", "degree", "company", "institution", "start", "end", "url"} {
		if value, ok := record[key]; ok && value != "" {
			fmt.Fprintf(&sb, "  %s=%v", key, value)
		}
	}
	fmt.Fprintln(a.out, sb.String())
}

// replConfirmerは削除確認をREPLの入出力で行う。
type replConfirmer struct {
	reader *bufio.Reader
	out    io.Writer
}

func (c replConfirmer) Confirm(prompt string) bool {
	return Confirm(c.reader, prompt, c.out)
}
