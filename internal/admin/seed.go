package admin

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bookstore/internal/flagx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/shopspring/decimal"
)

// starterCatalog is imported by seed-books when no file is given.
var starterCatalog = []models.Book{
	{Name: "Brighton Rock", Price: decimal.RequireFromString("20.25")},
	{Name: "Brave New World", Price: decimal.RequireFromString("25.00")},
	{Name: "Animal Farm", Price: decimal.RequireFromString("12.99")},
	{Name: "Dune", Price: decimal.RequireFromString("12.50")},
	{Name: "Dubliners", Price: decimal.RequireFromString("8.00")},
	{Name: "Emma", Price: decimal.RequireFromString("7.99")},
}

// seedFileBook is one entry of a seed file: [{"name": "Dune", "price": "12.50"}].
type seedFileBook struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (a *App) seedBooks(ctx context.Context, args []string) error {
	var file string

	fs := flag.NewFlagSet("seed-books", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&file, "file", "", "JSON file with books to import")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-file"})); err != nil {
		return err
	}

	books := starterCatalog
	if file != "" {
		var err error
		if books, err = readSeedFile(file); err != nil {
			return err
		}
	}

	if err := a.migrate(ctx); err != nil {
		return err
	}

	n, err := a.bookService().Import(ctx, books)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d books.\n", n)
	return nil
}

func readSeedFile(path string) ([]models.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedFileBook
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	books := make([]models.Book, 0, len(entries))
	for _, e := range entries {
		books = append(books, models.Book{Name: e.Name, Price: e.Price})
	}
	return books, nil
}
