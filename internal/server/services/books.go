package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// BargainThreshold is the exclusive upper price bound of the bargain list.
var BargainThreshold = decimal.NewFromInt(20)

type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *BookService {
	return &BookService{db: db, repomanager: m, log: log}
}

// Search returns books whose name contains keyword, ignoring case.
func (s *BookService) Search(ctx context.Context, keyword string) ([]models.Book, error) {
	books, err := s.repomanager.Books(s.db).SearchByName(ctx, keyword)
	if err != nil {
		s.log.Error(ctx, "book search failed", "keyword", keyword, "error", err)
		return nil, common.ErrorInternal
	}
	return books, nil
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.repomanager.Books(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "book list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return books, nil
}

// Bargains returns books priced below BargainThreshold, cheapest first.
func (s *BookService) Bargains(ctx context.Context) ([]models.Book, error) {
	books, err := s.repomanager.Books(s.db).ListCheaperThan(ctx, BargainThreshold)
	if err != nil {
		s.log.Error(ctx, "bargain list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return books, nil
}

// Add stores one book. An empty name or a non-positive price yields
// common.ErrorValidation and nothing is written.
func (s *BookService) Add(ctx context.Context, name string, price decimal.Decimal) (*models.Book, error) {
	book, err := newBook(name, price)
	if err != nil {
		return nil, err
	}

	b, err := s.repomanager.Books(s.db).Create(ctx, book)
	if err != nil {
		s.log.Error(ctx, "book create failed", "name", name, "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "book added", "id", b.ID, "name", b.Name)
	return b, nil
}

// Import stores all books in one transaction: either every book is written
// or none is.
func (s *BookService) Import(ctx context.Context, books []models.Book) (int, error) {
	prepared := make([]*models.Book, 0, len(books))
	for i, b := range books {
		book, err := newBook(b.Name, b.Price)
		if err != nil {
			return 0, fmt.Errorf("book %d: %w", i+1, err)
		}
		prepared = append(prepared, book)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Books(tx)
		for _, b := range prepared {
			if _, err := repo.Create(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "book import failed", "error", err)
		return 0, common.ErrorInternal
	}

	s.log.Info(ctx, "books imported", "count", len(prepared))
	return len(prepared), nil
}

func newBook(name string, price decimal.Decimal) (*models.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: book name is empty", common.ErrorValidation)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: book price must be positive", common.ErrorValidation)
	}
	return &models.Book{Name: name, Price: price.Round(2)}, nil
}
