package repository

import (
	"context"
	"testing"
	"time"

	"liblend/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserCreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(context.Background(), &models.User{Name: "Alice"}))
	err := repo.Create(context.Background(), &models.User{Name: "Alice"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserListFilterSortPage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	for _, name := range []string{"Alice", "Alina", "Bob", "Carol"} {
		require.NoError(t, repo.Create(context.Background(), &models.User{Name: name}))
	}

	users, total, err := repo.List(context.Background(), ListOptions{NameFilter: "Ali"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(context.Background(), ListOptions{
		SortBy:     "name",
		Descending: true,
		Page:       1,
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, users, 2)
	assert.Equal(t, "Carol", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)

	users, _, err = repo.List(context.Background(), ListOptions{
		SortBy:     "name",
		Descending: true,
		Page:       2,
		Limit:      2,
	})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alina", users[0].Name)
}

func TestUserGetWithLoansPreloadsBooks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user, book := seedUserAndBook(t, db, "Alice", "Neuromancer")

	returned := time.Now().UTC()
	score := 9
	require.NoError(t, db.Create(&models.LoanRecord{
		UserID: &user.ID, BookID: &book.ID,
		BorrowedDate: returned.Add(-time.Hour), ReturnedDate: &returned, Score: &score,
	}).Error)

	loaded, err := repo.GetWithLoans(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, loaded.LoanRecords, 1)
	require.NotNil(t, loaded.LoanRecords[0].Book)
	assert.Equal(t, "Neuromancer", loaded.LoanRecords[0].Book.Name)
}

func TestUserDeleteKeepsLoanHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user, book := seedUserAndBook(t, db, "Alice", "Neuromancer")

	returned := time.Now().UTC()
	loan := &models.LoanRecord{
		UserID: &user.ID, BookID: &book.ID,
		BorrowedDate: returned.Add(-time.Hour), ReturnedDate: &returned,
	}
	require.NoError(t, db.Create(loan).Error)

	rows, err := repo.Delete(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// The loan record survives the user deletion (SET NULL, not CASCADE).
	var survived models.LoanRecord
	require.NoError(t, db.First(&survived, loan.ID).Error)
}
