// Package credstore は管理CLIの資格情報のローカル永続化を提供する。
// 資格情報はユーザー設定ディレクトリ配下のJSONファイルに保存される。
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials は保存される管理者資格情報。
// UsernameとPasswordは常に両方揃って保存される。
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ErrIncomplete はユーザー名とパスワードの片方だけを保存しようとした場合のエラー。
var ErrIncomplete = errors.New("credstore: username and password must both be set")

// Store は資格情報ファイルの読み書きを行う。
type Store struct {
	path string
}

// NewStore は指定パスのStoreを生成する。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath はOSのユーザー設定ディレクトリ配下の既定の保存先を返す。
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "folio", "auth.json"), nil
}

// Load は保存済みの資格情報を読み込む。
// ファイルが存在しない場合は(nil, nil)を返す。
// 片方のフィールドしか持たない壊れたファイルはエラーとして扱う。
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrIncomplete
	}
	return &creds, nil
}

// Save は資格情報をファイルに書き込む。
// ファイルは所有者のみ読み書き可能なパーミッションで作成される。
func (s *Store) Save(creds *Credentials) error {
	if creds == nil || creds.Username == "" || creds.Password == "" {
		return ErrIncomplete
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear は保存済みの資格情報を削除する。ファイルが存在しない場合は何もしない。
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
