// Package audit persists the login audit trail.
package audit

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, entry *models.LoginAuditEntry) (*models.LoginAuditEntry, error) {
	query :=
		`INSERT INTO login_audit (username, success, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, entry.UserName, entry.Success, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// List returns the whole trail, newest first.
func (r *SQLRepository) List(ctx context.Context) ([]models.LoginAuditEntry, error) {
	query :=
		`SELECT id, username, success, created_at FROM login_audit
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.LoginAuditEntry
	for rows.Next() {
		var e models.LoginAuditEntry
		if err := rows.Scan(&e.ID, &e.UserName, &e.Success, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
