package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	auditrepo "github.com/dmitrijs2005/bookstore/internal/server/repositories/audit"
	booksrepo "github.com/dmitrijs2005/bookstore/internal/server/repositories/books"
	usersrepo "github.com/dmitrijs2005/bookstore/internal/server/repositories/users"
	"github.com/shopspring/decimal"
)

type fakeUsersRepo struct {
	mu        sync.Mutex
	users     map[string]models.User
	nextID    int64
	getErr    error
	listErr   error
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	f.users[u.UserName] = *u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []models.LoginAuditEntry
	createErr error
	listErr   error
}

func (f *fakeAuditRepo) Create(ctx context.Context, e *models.LoginAuditEntry) (*models.LoginAuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	e.ID = int64(len(f.entries) + 1)
	f.entries = append(f.entries, *e)
	return e, nil
}

func (f *fakeAuditRepo) List(ctx context.Context) ([]models.LoginAuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.LoginAuditEntry, len(f.entries))
	for i, e := range f.entries {
		out[len(f.entries)-1-i] = e
	}
	return out, nil
}

func (f *fakeAuditRepo) snapshot() []models.LoginAuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LoginAuditEntry(nil), f.entries...)
}

type fakeBooksRepo struct {
	books     []models.Book
	createErr error
	// failAfter makes Create fail once this many books were stored.
	failAfter int
	queryErr  error

	lastKeyword   string
	lastThreshold decimal.Decimal
	handles       []dbx.DBTX
}

func (f *fakeBooksRepo) Create(ctx context.Context, b *models.Book) (*models.Book, error) {
	if f.createErr != nil && len(f.books) >= f.failAfter {
		return nil, f.createErr
	}
	b.ID = int64(len(f.books) + 1)
	f.books = append(f.books, *b)
	return b, nil
}

func (f *fakeBooksRepo) List(ctx context.Context) ([]models.Book, error) {
	return f.books, f.queryErr
}

func (f *fakeBooksRepo) SearchByName(ctx context.Context, keyword string) ([]models.Book, error) {
	f.lastKeyword = keyword
	return f.books, f.queryErr
}

func (f *fakeBooksRepo) ListCheaperThan(ctx context.Context, threshold decimal.Decimal) ([]models.Book, error) {
	f.lastThreshold = threshold
	return f.books, f.queryErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	a *fakeAuditRepo
	b *fakeBooksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), a: &fakeAuditRepo{}, b: &fakeBooksRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository     { return m.u }
func (m *fakeRepoManager) Audit(db dbx.DBTX) auditrepo.Repository     { return m.a }
func (m *fakeRepoManager) Books(db dbx.DBTX) booksrepo.Repository {
	m.b.handles = append(m.b.handles, db)
	return m.b
}
