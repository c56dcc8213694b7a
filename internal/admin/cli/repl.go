package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFnはユーザー向け出力のテスト用の差し替え口。
var printlnFn = fmt.Println

// execIfaceはREPLが操作に使う最小限のコマンド面。
// 実体はAppで、テストでは軽量なスタブを与えられる。
type execIface interface {
	loggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, kindName string) error
	Create(ctx context.Context, kindName string) error
	Edit(ctx context.Context, kindName, id string) error
	Delete(ctx context.Context, kindName, id string) error
	Messages(ctx context.Context, limitArg string) error
}

// requiresLoginは認証済みセッションでしか実行できないコマンド。
// listは公開GETなのでログイン前でも通す。
var requiresLogin = map[string]bool{
	"logout":   true,
	"new":      true,
	"edit":     true,
	"delete":   true,
	"messages": true,
}

// runREPLは管理クライアントの対話ループを回す。
// 1行を読み、先頭トークンをコマンドとして a のメソッドへ振り分ける。
// 入力のEOFか "exit"/"quit" で抜ける。readerはコマンド内の
// プロンプト入力と共有するので、ここで別のバッファを重ねてはならない。
// コマンド側のエラーはここでは握りつぶす。各コマンドが自分で
// 通知を出すので、ループは入出力に専念する。
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("folio%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if requiresLogin[cmd] && !a.loggedIn() {
			printlnFn("please login first")
			continue
		}

		switch cmd {
		case "help":
			if a.loggedIn() {
				printlnFn("Available commands: list <kind>, new <kind>, edit <kind> <id>, delete <kind> <id>, messages [limit], logout, exit")
				printlnFn("Kinds: about, projects, experience, education, social (read-only)")
			} else {
				printlnFn("Available commands: login, list <kind>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			if len(args) < 1 {
				printlnFn("Usage: list <kind>")
				continue
			}
			_ = a.List(ctx, args[0])

		case "new":
			if len(args) < 1 {
				printlnFn("Usage: new <kind>")
				continue
			}
			_ = a.Create(ctx, args[0])

		case "edit":
			if len(args) < 2 {
				printlnFn("Usage: edit <kind> <id>")
				continue
			}
			_ = a.Edit(ctx, args[0], args[1])

		case "delete":
			if len(args) < 2 {
				printlnFn("Usage: delete <kind> <id>")
				continue
			}
			_ = a.Delete(ctx, args[0], args[1])

		case "messages":
			limitArg := ""
			if len(args) > 0 {
				limitArg = args[0]
			}
			_ = a.Messages(ctx, limitArg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
