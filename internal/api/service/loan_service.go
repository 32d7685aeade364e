package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"liblend/internal/api/models"
	"liblend/internal/api/repository"

	"gorm.io/gorm"
)

// LoanService owns the borrow/return lifecycle. Every operation re-checks
// user and book existence so that the caller-facing error names which side is
// missing, and reports both when both are gone.
type LoanService interface {
	// Borrow opens a loan for (userID, bookID). The pair-level conflict is
	// reported before the book-level one: a user re-borrowing their own open
	// loan gets ErrAlreadyBorrowedByUser, not ErrBookAlreadyBorrowed.
	Borrow(ctx context.Context, userID, bookID int64) (*models.LoanRecord, error)

	// Return closes the open loan for the pair and records the score, then
	// recomputes the book's average. A recompute failure is surfaced: the
	// caller must not see the return as fully applied when the aggregate
	// write failed.
	Return(ctx context.Context, userID, bookID int64, score int) error

	// AmendScore overwrites the score on the most recent closed loan for the
	// pair and recomputes the average.
	AmendScore(ctx context.Context, userID, bookID int64, newScore int) error

	// DeleteLoanRecord removes the most recent loan record for the pair,
	// open or closed. Only a scored record's removal triggers a recompute;
	// an unscored record cannot have contributed to the average.
	DeleteLoanRecord(ctx context.Context, userID, bookID int64) error
}

type loanService struct {
	userRepo repository.UserRepository
	bookRepo repository.BookRepository
	loanRepo repository.LoanRepository
	ratings  RatingService
}

func NewLoanService(userRepo repository.UserRepository, bookRepo repository.BookRepository, loanRepo repository.LoanRepository, ratings RatingService) LoanService {
	return &loanService{
		userRepo: userRepo,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		ratings:  ratings,
	}
}

// checkPairExists resolves the joint not-found rule: both sides missing is a
// single distinguishable outcome, otherwise the missing side is named.
func (s *loanService) checkPairExists(ctx context.Context, userID, bookID int64) error {
	_, userErr := s.userRepo.GetByID(ctx, userID)
	_, bookErr := s.bookRepo.GetByID(ctx, bookID)

	userMissing := errors.Is(userErr, gorm.ErrRecordNotFound)
	bookMissing := errors.Is(bookErr, gorm.ErrRecordNotFound)

	switch {
	case userMissing && bookMissing:
		return ErrUserAndBookNotFound
	case userMissing:
		return ErrUserNotFound
	case bookMissing:
		return ErrBookNotFound
	}
	if userErr != nil {
		return fmt.Errorf("look up user: %w", userErr)
	}
	if bookErr != nil {
		return fmt.Errorf("look up book: %w", bookErr)
	}
	return nil
}

func (s *loanService) Borrow(ctx context.Context, userID, bookID int64) (*models.LoanRecord, error) {
	if err := s.checkPairExists(ctx, userID, bookID); err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.Borrow(ctx, userID, bookID, time.Now().UTC())
	switch {
	case errors.Is(err, repository.ErrUserLoanActive):
		return nil, ErrAlreadyBorrowedByUser
	case errors.Is(err, repository.ErrBookLoanActive):
		return nil, ErrBookAlreadyBorrowed
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Book deleted between the existence check and the locked insert.
		return nil, ErrBookNotFound
	case err != nil:
		return nil, fmt.Errorf("create loan: %w", err)
	}
	return loan, nil
}

func (s *loanService) Return(ctx context.Context, userID, bookID int64, score int) error {
	if err := s.checkPairExists(ctx, userID, bookID); err != nil {
		return err
	}
	if score < 1 || score > 10 {
		return ErrInvalidScore
	}

	loan, err := s.loanRepo.FindOne(ctx, repository.LoanFilter{
		UserID: &userID,
		BookID: &bookID,
		State:  repository.LoanStateOpen,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoanNotFound
		}
		return fmt.Errorf("find open loan: %w", err)
	}

	now := time.Now().UTC()
	loan.ReturnedDate = &now
	loan.Score = &score
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return fmt.Errorf("close loan: %w", err)
	}

	return s.ratings.Recompute(ctx, bookID)
}

func (s *loanService) AmendScore(ctx context.Context, userID, bookID int64, newScore int) error {
	if err := s.checkPairExists(ctx, userID, bookID); err != nil {
		return err
	}

	loan, err := s.loanRepo.FindOne(ctx, repository.LoanFilter{
		UserID: &userID,
		BookID: &bookID,
		State:  repository.LoanStateClosed,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClosedLoanNotFound
		}
		return fmt.Errorf("find closed loan: %w", err)
	}

	loan.Score = &newScore
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return fmt.Errorf("amend score: %w", err)
	}

	return s.ratings.Recompute(ctx, bookID)
}

func (s *loanService) DeleteLoanRecord(ctx context.Context, userID, bookID int64) error {
	if err := s.checkPairExists(ctx, userID, bookID); err != nil {
		return err
	}

	loan, err := s.loanRepo.FindOne(ctx, repository.LoanFilter{
		UserID: &userID,
		BookID: &bookID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoanRecordNotFound
		}
		return fmt.Errorf("find loan record: %w", err)
	}

	hadScore := loan.Score != nil

	rows, err := s.loanRepo.Delete(ctx, loan.ID)
	if err != nil {
		return fmt.Errorf("delete loan record: %w", err)
	}
	if rows == 0 {
		return ErrLoanRecordNotFound
	}

	if hadScore {
		return s.ratings.Recompute(ctx, bookID)
	}
	return nil
}
