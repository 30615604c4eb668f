// Command admin runs operator tasks against the bookstore database.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bookstore/internal/admin"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	app, err := admin.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("admin: %v", err)
	}

	err = app.Run(ctx, os.Args[1:])
	_ = app.Close()
	if err != nil {
		log.Fatalf("admin: %v", err)
	}
}
