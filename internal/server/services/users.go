// Package services contains server-side business logic. UserService covers
// accounts and logins; BookService covers the catalog.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/auth"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookstore/internal/server/sessions"
)

// RegisterInput is a registration request that already passed form validation.
type RegisterInput struct {
	UserName  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Store
	log         logging.Logger
	now         func() time.Time
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, store sessions.Store, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessions:    store,
		log:         log,
		now:         time.Now,
	}
}

// Register hashes the password and stores one user row. A taken username
// yields common.ErrorAlreadyExists; anything else that fails is
// common.ErrorInternal.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.log.Error(ctx, "password hashing failed", "username", in.UserName, "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserName:     in.UserName,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.log.Error(ctx, "user create failed", "username", in.UserName, "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "user registered", "username", u.UserName)
	return u, nil
}

// Login checks the credentials, records exactly one audit entry for the
// attempt and, on success, opens a session. Unknown users and wrong passwords
// both yield common.ErrorUnauthorized. If the audit entry cannot be written
// no session is created.
func (s *UserService) Login(ctx context.Context, userName, password string) (*models.Session, error) {
	ok, lookupErr := s.verify(ctx, userName, password)

	if err := s.recordAttempt(ctx, userName, ok); err != nil {
		s.log.Error(ctx, "login audit failed", "username", userName, "error", err)
		return nil, common.ErrorInternal
	}

	if lookupErr != nil {
		s.log.Error(ctx, "user lookup failed", "username", userName, "error", lookupErr)
		return nil, common.ErrorInternal
	}
	if !ok {
		s.log.Info(ctx, "login failed", "username", userName)
		return nil, common.ErrorUnauthorized
	}

	sess, err := s.sessions.Create(ctx, userName)
	if err != nil {
		s.log.Error(ctx, "session create failed", "username", userName, "error", err)
		return nil, common.ErrorInternal
	}

	s.log.Info(ctx, "login succeeded", "username", userName)
	return sess, nil
}

// Logout drops the session. Unknown ids are not an error.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Error(ctx, "session delete failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// ListUsers returns every account without password hashes.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "user list failed", "error", err)
		return nil, common.ErrorInternal
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ListAudit returns the login audit trail, newest first.
func (s *UserService) ListAudit(ctx context.Context) ([]models.LoginAuditEntry, error) {
	entries, err := s.repomanager.Audit(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "audit list failed", "error", err)
		return nil, common.ErrorInternal
	}
	return entries, nil
}

// verify reports whether password matches the stored hash for userName.
// Unknown or empty usernames are compared against a dummy hash. A non-nil
// error means the lookup itself failed.
func (s *UserService) verify(ctx context.Context, userName, password string) (bool, error) {
	if userName == "" || password == "" {
		_ = auth.CheckDummyPassword(password)
		return false, nil
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = auth.CheckDummyPassword(password)
			return false, nil
		}
		return false, err
	}

	return auth.CheckPassword(user.PasswordHash, password) == nil, nil
}

func (s *UserService) recordAttempt(ctx context.Context, userName string, success bool) error {
	_, err := s.repomanager.Audit(s.db).Create(ctx, &models.LoginAuditEntry{
		UserName:  userName,
		Success:   success,
		CreatedAt: s.now().UTC(),
	})
	return err
}
