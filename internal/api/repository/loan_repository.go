package repository

import (
	"context"
	"errors"
	"time"

	"liblend/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanState narrows a loan query to open records, closed records, or both.
type LoanState int

const (
	LoanStateAny LoanState = iota
	LoanStateOpen
	LoanStateClosed
)

// LoanFilter is the predicate the loan queries compose on. Zero values mean
// "don't care" for that dimension.
type LoanFilter struct {
	UserID     *int64
	BookID     *int64
	State      LoanState
	ScoredOnly bool
}

// Borrow conflict errors, detected inside the borrow transaction while the
// book row is locked.
var (
	ErrUserLoanActive = errors.New("an open loan for this user and book already exists")
	ErrBookLoanActive = errors.New("an open loan for this book already exists")
)

// LoanRepository defines the interface for loan record data operations.
type LoanRepository interface {
	// Borrow creates the open loan record for (userID, bookID). The active
	// loan checks and the insert run in one transaction holding a row lock
	// on the book, so two concurrent borrows of the same book cannot both
	// pass the check. Returns ErrUserLoanActive or ErrBookLoanActive on
	// conflict, gorm.ErrRecordNotFound if the book vanished meanwhile.
	Borrow(ctx context.Context, userID, bookID int64, borrowedDate time.Time) (*models.LoanRecord, error)

	FindOne(ctx context.Context, filter LoanFilter) (*models.LoanRecord, error)
	FindAll(ctx context.Context, filter LoanFilter) ([]models.LoanRecord, error)
	Update(ctx context.Context, loan *models.LoanRecord) error
	Delete(ctx context.Context, id int64) (int64, error)

	// Scores returns every non-null score recorded for the book.
	Scores(ctx context.Context, bookID int64) ([]int, error)
	CountOpen(ctx context.Context, filter LoanFilter) (int64, error)
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Borrow(ctx context.Context, userID, bookID int64, borrowedDate time.Time) (*models.LoanRecord, error) {
	var loan *models.LoanRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the book row for the duration of the check-and-insert.
		// SQLite has no FOR UPDATE and serializes writers on its own, so the
		// lock clause only applies on Postgres.
		locked := tx
		if tx.Dialector.Name() == "postgres" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var book models.Book
		if err := locked.First(&book, "id = ?", bookID).Error; err != nil {
			return err
		}

		var pairOpen int64
		if err := tx.Model(&models.LoanRecord{}).
			Where("user_id = ? AND book_id = ? AND returned_date IS NULL", userID, bookID).
			Count(&pairOpen).Error; err != nil {
			return err
		}
		if pairOpen > 0 {
			return ErrUserLoanActive
		}

		var bookOpen int64
		if err := tx.Model(&models.LoanRecord{}).
			Where("book_id = ? AND returned_date IS NULL", bookID).
			Count(&bookOpen).Error; err != nil {
			return err
		}
		if bookOpen > 0 {
			return ErrBookLoanActive
		}

		l := &models.LoanRecord{
			UserID:       &userID,
			BookID:       &bookID,
			BorrowedDate: borrowedDate,
		}
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		loan = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (r *loanRepository) apply(query *gorm.DB, filter LoanFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.BookID != nil {
		query = query.Where("book_id = ?", *filter.BookID)
	}
	switch filter.State {
	case LoanStateOpen:
		query = query.Where("returned_date IS NULL")
	case LoanStateClosed:
		query = query.Where("returned_date IS NOT NULL")
	}
	if filter.ScoredOnly {
		query = query.Where("score IS NOT NULL")
	}
	return query
}

// FindOne returns the most recent matching record; closed-record lookups are
// ordered by return date so score amendments hit the latest closed loan.
func (r *loanRepository) FindOne(ctx context.Context, filter LoanFilter) (*models.LoanRecord, error) {
	order := "borrowed_date DESC, id DESC"
	if filter.State == LoanStateClosed {
		order = "returned_date DESC, id DESC"
	}

	var loan models.LoanRecord
	err := r.apply(r.db.WithContext(ctx), filter).
		Order(order).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindAll(ctx context.Context, filter LoanFilter) ([]models.LoanRecord, error) {
	var loans []models.LoanRecord
	err := r.apply(r.db.WithContext(ctx), filter).
		Order("borrowed_date ASC, id ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, loan *models.LoanRecord) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *loanRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.LoanRecord{}, id)
	return result.RowsAffected, result.Error
}

func (r *loanRepository) Scores(ctx context.Context, bookID int64) ([]int, error) {
	var scores []int
	err := r.db.WithContext(ctx).
		Model(&models.LoanRecord{}).
		Where("book_id = ? AND score IS NOT NULL", bookID).
		Pluck("score", &scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *loanRepository) CountOpen(ctx context.Context, filter LoanFilter) (int64, error) {
	filter.State = LoanStateOpen
	var count int64
	err := r.apply(r.db.WithContext(ctx).Model(&models.LoanRecord{}), filter).
		Count(&count).Error
	return count, err
}
