package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"liblend/internal/api/models"
	"liblend/internal/api/repository"
	"liblend/internal/cache"

	"gorm.io/gorm"
)

// RatingService keeps Book.AverageScore consistent with the scores on the
// book's loan records. The average is always re-derived from the full set of
// surviving scores rather than maintained incrementally: score amendments and
// record deletions make a running sum/count impossible to trust, and the scan
// is bounded by one book's borrow history.
type RatingService interface {
	// Recompute recalculates and stores the book's average score. Writes the
	// unscored sentinel when no scored records remain. Idempotent.
	Recompute(ctx context.Context, bookID int64) error
}

type ratingService struct {
	bookRepo repository.BookRepository
	loanRepo repository.LoanRepository
	books    *cache.BookCache
}

func NewRatingService(bookRepo repository.BookRepository, loanRepo repository.LoanRepository, books *cache.BookCache) RatingService {
	return &ratingService{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		books:    books,
	}
}

func (s *ratingService) Recompute(ctx context.Context, bookID int64) error {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("load book for recompute: %w", err)
	}

	scores, err := s.loanRepo.Scores(ctx, bookID)
	if err != nil {
		return fmt.Errorf("load scores: %w", err)
	}

	average := float64(models.UnscoredAverage)
	if len(scores) > 0 {
		sum := 0
		for _, score := range scores {
			sum += score
		}
		average = roundToCents(float64(sum) / float64(len(scores)))
	}

	book.AverageScore = average
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return fmt.Errorf("store average score: %w", err)
	}

	s.books.Invalidate(ctx, bookID)
	return nil
}

// roundToCents rounds half-up at two decimal places.
func roundToCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
