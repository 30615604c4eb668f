// Package sessions keeps server-side login sessions with a fixed idle timeout.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/google/uuid"
)

// Store is safe for concurrent use. Get and Touch report common.ErrorNotFound
// for unknown and idle-expired sessions alike.
type Store interface {
	Create(ctx context.Context, userName string) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	// Touch marks the session as used now, restarting its idle window.
	Touch(ctx context.Context, id string) (*models.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}

var newID = uuid.NewString
