// Package books persists the catalog.
package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/shopspring/decimal"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`INSERT INTO books (name, price)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, book.Name, book.Price).Scan(&book.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Book, error) {
	query :=
		`SELECT id, name, price FROM books
		 ORDER BY id
		 `

	return r.query(ctx, query)
}

// SearchByName returns books whose name contains keyword, ignoring case.
// LIKE wildcards inside keyword match literally. Both sides are folded by the
// database's LOWER; SQLite's folds ASCII only, so there non-ASCII letters
// match case-sensitively.
func (r *SQLRepository) SearchByName(ctx context.Context, keyword string) ([]models.Book, error) {
	query :=
		`SELECT id, name, price FROM books
		 WHERE LOWER(name) LIKE LOWER($1) ESCAPE '\'
		 ORDER BY id
		 `

	return r.query(ctx, query, "%"+escapeLike(keyword)+"%")
}

func (r *SQLRepository) ListCheaperThan(ctx context.Context, threshold decimal.Decimal) ([]models.Book, error) {
	query :=
		`SELECT id, name, price FROM books
		 WHERE price < $1
		 ORDER BY price, id
		 `

	return r.query(ctx, query, threshold)
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Price); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
