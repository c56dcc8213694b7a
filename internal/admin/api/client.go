// Package apiはサーバーのREST APIを呼び出す管理クライアントを提供する。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Kindは管理対象のコンテンツ種別を表す。
type Kind struct {
	// Nameは表示用の種別名。
	Name string
	// Pathは一覧取得と作成に使うAPIパス。
	Path string
	// Multipartはtrueのときmultipart/form-dataで送信する。
	Multipart bool
	// ReadOnlyはtrueのとき作成・更新・削除を持たない。
	ReadOnly bool
}

// 管理クライアントが扱うコンテンツ種別の一覧。
// SocialはAPI側に更新系が無いため読み取り専用。
var (
	KindAbout      = Kind{Name: "About", Path: "/api/About"}
	KindProjects   = Kind{Name: "Projects", Path: "/api/Projects", Multipart: true}
	KindExperience = Kind{Name: "Experience", Path: "/api/Experience"}
	KindEducation  = Kind{Name: "Education", Path: "/api/Education"}
	KindSocial     = Kind{Name: "Social", Path: "/api/Social", ReadOnly: true}
)

// Kindsは管理可能な種別を画面の並び順で返す。
func Kinds() []Kind {
	return []Kind{KindAbout, KindProjects, KindExperience, KindEducation, KindSocial}
}

// ErrAmbiguousSuccessはサーバーが成功ステータスを返したのに
// レスポンスボディを読めなかったことを表す。操作自体は反映されて
// いる可能性があるので、呼び出し側は失敗扱いにせず再取得で
// 状態を確かめる。
var ErrAmbiguousSuccess = errors.New("success response could not be decoded")

// APIErrorはサーバーが返したエラーレスポンスを表す。
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// HeaderSourceはリクエストに付与する認証ヘッダーの供給元。
type HeaderSource interface {
	AuthorizationHeader() (string, error)
}

// Payloadはリクエストボディとして送信する内容。
type Payload struct {
	// ContentTypeはボディのContent-Typeヘッダー値。
	ContentType string
	// Bodyは送信するバイト列。
	Body []byte
}

// JSONPayloadは値をJSONエンコードしたPayloadを作る。
func JSONPayload(v any) (*Payload, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return &Payload{ContentType: "application/json", Body: body}, nil
}

// ClientはサーバーのREST APIを呼び出す。
type Client struct {
	baseURL string
	auth    HeaderSource
	client  *http.Client
}

// NewClientはClientを生成する。
func NewClient(baseURL string, auth HeaderSource) *Client {
	return &Client{
		baseURL: baseURL,
		auth:    auth,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Listは指定種別のレコード一覧を取得する。認証は不要。
func (c *Client) List(ctx context.Context, kind Kind) ([]map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+kind.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var records []map[string]any
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

// Createはレコードを作成し、サーバーが確定させた完全なレコードを返す。
func (c *Client) Create(ctx context.Context, kind Kind, payload *Payload) (map[string]any, error) {
	return c.send(ctx, http.MethodPost, c.baseURL+kind.Path, payload)
}

// Updateは既存レコードを更新し、更新後の完全なレコードを返す。
func (c *Client) Update(ctx context.Context, kind Kind, id string, payload *Payload) (map[string]any, error) {
	return c.send(ctx, http.MethodPut, c.baseURL+kind.Path+"/"+id, payload)
}

// Deleteは指定IDのレコードを削除する。
func (c *Client) Delete(ctx context.Context, kind Kind, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+kind.Path+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if err := c.authorize(req); err != nil {
		return err
	}
	return c.do(req, nil)
}

// ListContactMessagesは受信した問い合わせの一覧を取得する。
func (c *Client) ListContactMessages(ctx context.Context, limit int) ([]map[string]any, error) {
	url := c.baseURL + "/api/contact-messages"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []map[string]any{}
	}
	return records, nil
}

func (c *Client) send(ctx context.Context, method, url string, payload *Payload) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload.Body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", payload.ContentType)
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	var record map[string]any
	if err := c.do(req, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) authorize(req *http.Request) error {
	header, err := c.auth.AuthorizationHeader()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", header)
	return nil
}

// doはリクエストを実行し、成功レスポンスをoutへデコードする。
// エラーレスポンスは{"error": ...}形式としてAPIErrorに変換する。
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrAmbiguousSuccess, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "unreadable error body"}
	}
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: parsed.Error}
}
