package service

import (
	"context"
	"testing"

	"liblend/internal/api/models"
	"liblend/internal/api/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the whole engine against an in-memory SQLite store, the
// same shape the API server assembles in production.
type testEnv struct {
	db       *gorm.DB
	loanRepo repository.LoanRepository
	ratings  RatingService
	loans    LoanService
	users    UserService
	books    BookService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Book{}, &models.LoanRecord{}))

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	loanRepo := repository.NewLoanRepository(db)

	ratings := NewRatingService(bookRepo, loanRepo, nil)
	return &testEnv{
		db:       db,
		loanRepo: loanRepo,
		ratings:  ratings,
		loans:    NewLoanService(userRepo, bookRepo, loanRepo, ratings),
		users:    NewUserService(userRepo, loanRepo),
		books:    NewBookService(bookRepo, loanRepo, nil),
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), name)
	require.NoError(t, err)
	return user
}

func (e *testEnv) createBook(t *testing.T, name string) *models.Book {
	t.Helper()
	book, err := e.books.Create(context.Background(), name)
	require.NoError(t, err)
	return book
}

func (e *testEnv) bookAverage(t *testing.T, id int64) float64 {
	t.Helper()
	var book models.Book
	require.NoError(t, e.db.First(&book, id).Error)
	return book.AverageScore
}

func (e *testEnv) borrowAndReturn(t *testing.T, userID, bookID int64, score int) {
	t.Helper()
	_, err := e.loans.Borrow(context.Background(), userID, bookID)
	require.NoError(t, err)
	require.NoError(t, e.loans.Return(context.Background(), userID, bookID, score))
}
