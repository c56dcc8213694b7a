// Package sessionは管理クライアントのログイン状態を管理する。
// 資格情報はサーバー側でリクエストごとに検証されるため、
// セッションはトークンを持たず、保存した資格情報から
// Authorizationヘッダーを都度組み立てる。
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hitoshi/folio/internal/admin/credstore"
)

// ErrInvalidCredentialsはサーバーが資格情報を拒否したことを示す。
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotLoggedInはログインしていない状態での操作を示す。
var ErrNotLoggedIn = errors.New("not logged in")

// CredentialStoreは資格情報の永続化を抽象化する。
type CredentialStore interface {
	Load() (*credstore.Credentials, error)
	Save(creds *credstore.Credentials) error
	Clear() error
}

// Sessionは管理クライアントのログイン状態を保持する。
type Session struct {
	baseURL string
	store   CredentialStore
	client  *http.Client

	mu    sync.RWMutex
	creds *credstore.Credentials
}

// NewSessionはSessionを生成する。
func NewSession(baseURL string, store CredentialStore) *Session {
	return &Session{
		baseURL: baseURL,
		store:   store,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Loginは資格情報をサーバーで検証し、成功したら保存する。
func (s *Session) Login(ctx context.Context, username, password string) error {
	creds := &credstore.Credentials{Username: username, Password: password}
	if err := s.verify(ctx, creds); err != nil {
		return err
	}
	if err := s.store.Save(creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Restoreは保存済みの資格情報を読み込む。
// サーバーへの再検証は行わず、次のリクエストで拒否されれば
// その時点でエラーになる。
func (s *Session) Restore() (bool, error) {
	creds, err := s.store.Load()
	if err != nil {
		return false, fmt.Errorf("load credentials: %w", err)
	}
	if creds == nil {
		return false, nil
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return true, nil
}

// Logoutは保存済みの資格情報を破棄する。
func (s *Session) Logout() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()
	return nil
}

// LoggedInはログイン済みかどうかを返す。
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds != nil
}

// Usernameはログイン中のユーザー名を返す。未ログインなら空文字。
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.Username
}

// AuthorizationHeaderは現在の資格情報からBasic認証ヘッダー値を組み立てる。
func (s *Session) AuthorizationHeader() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return "", ErrNotLoggedIn
	}
	raw := s.creds.Username + ":" + s.creds.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// verifyは認証確認エンドポイントに資格情報を送って検証する。
func (s *Session) verify(ctx context.Context, creds *credstore.Credentials) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth-check", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("unexpected status %d from auth check", resp.StatusCode)
	}
}
