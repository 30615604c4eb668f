package audit

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/server/models"
)

// Repository is append-only: entries are never updated or deleted.
type Repository interface {
	Create(ctx context.Context, entry *models.LoginAuditEntry) (*models.LoginAuditEntry, error)
	List(ctx context.Context) ([]models.LoginAuditEntry, error)
}
