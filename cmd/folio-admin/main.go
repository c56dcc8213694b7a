package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hitoshi/folio/internal/admin/cli"
)

// defaultServerURLは接続先の指定がないときのサーバーURL。
const defaultServerURL = "http://localhost:8080"

func main() {
	serverURL := os.Getenv("FOLIO_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}
	serverURL = strings.TrimRight(serverURL, "/")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(serverURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	app.Run(ctx)
}
