package books

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	SearchByName(ctx context.Context, keyword string) ([]models.Book, error)
	ListCheaperThan(ctx context.Context, threshold decimal.Decimal) ([]models.Book, error)
}
