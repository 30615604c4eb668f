// Command server runs the bookstore web application.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/bookstore/internal/server"
	"github.com/dmitrijs2005/bookstore/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("bookstore: %v", err)
	}

	app.Run(context.Background())
}
