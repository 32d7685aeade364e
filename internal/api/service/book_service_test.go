package service

import (
	"context"
	"testing"

	"liblend/internal/api/dto"
	"liblend/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookCreateStartsUnscored(t *testing.T) {
	env := newTestEnv(t)
	book := env.createBook(t, "Dune")
	assert.InDelta(t, float64(models.UnscoredAverage), book.AverageScore, 1e-9)

	_, err := env.books.Create(context.Background(), "Dune")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestBookGetWithoutCache(t *testing.T) {
	env := newTestEnv(t)
	book := env.createBook(t, "Dune")

	resp, err := env.books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.Name)
	assert.InDelta(t, float64(models.UnscoredAverage), resp.AverageScore, 1e-9)

	_, err = env.books.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookListSortsByAverageScore(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	dune := env.createBook(t, "Dune")
	hype := env.createBook(t, "Hyperion")
	env.createBook(t, "Solaris")

	env.borrowAndReturn(t, alice.ID, dune.ID, 6)
	env.borrowAndReturn(t, alice.ID, hype.ID, 9)

	page, err := env.books.List(context.Background(), dto.ListQuery{
		SortBy: "averageScore", Order: "DESC",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Hyperion", page.Items[0].Name)
	assert.Equal(t, "Dune", page.Items[1].Name)
	assert.Equal(t, "Solaris", page.Items[2].Name)
}

func TestBookRename(t *testing.T) {
	env := newTestEnv(t)
	book := env.createBook(t, "Dune")
	env.createBook(t, "Hyperion")

	require.NoError(t, env.books.Rename(context.Background(), book.ID, "Dune Messiah"))
	resp, err := env.books.Get(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", resp.Name)

	assert.ErrorIs(t, env.books.Rename(context.Background(), book.ID, "Hyperion"), ErrDuplicateName)
	assert.ErrorIs(t, env.books.Rename(context.Background(), 42, "Nobody Home"), ErrBookNotFound)
}

func TestBookDeleteGuardsActiveLoan(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")
	book := env.createBook(t, "Dune")
	_, err := env.loans.Borrow(context.Background(), alice.ID, book.ID)
	require.NoError(t, err)

	err = env.books.Delete(context.Background(), book.ID)
	assert.ErrorIs(t, err, ErrBookHasActiveLoan)
	assert.True(t, Conflict(err))

	require.NoError(t, env.loans.Return(context.Background(), alice.ID, book.ID, 7))
	require.NoError(t, env.books.Delete(context.Background(), book.ID))

	_, err = env.books.Get(context.Background(), book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	// Loan history survives with the book reference detached.
	detail, err := env.users.Get(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, detail.Books.Past, 1)
}
