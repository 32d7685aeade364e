package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liblend/internal/api/dto"
	"liblend/internal/api/models"
	"liblend/internal/api/repository"
	"liblend/internal/cache"

	"gorm.io/gorm"
)

var bookSortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"averageScore": "average_score",
}

type BookService interface {
	Create(ctx context.Context, name string) (*models.Book, error)
	Get(ctx context.Context, id int64) (*dto.BookResponse, error)
	List(ctx context.Context, query dto.ListQuery) (*dto.PaginatedBooksResponse, error)
	Rename(ctx context.Context, id int64, name string) error
	// Delete refuses while the book is out on loan; closed history survives
	// with its book reference nulled by the store.
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	bookRepo repository.BookRepository
	loanRepo repository.LoanRepository
	books    *cache.BookCache
}

func NewBookService(bookRepo repository.BookRepository, loanRepo repository.LoanRepository, books *cache.BookCache) BookService {
	return &bookService{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		books:    books,
	}
}

func (s *bookService) Create(ctx context.Context, name string) (*models.Book, error) {
	book := &models.Book{
		Name:         strings.TrimSpace(name),
		AverageScore: models.UnscoredAverage,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*dto.BookResponse, error) {
	if book, ok := s.books.Get(ctx, id); ok {
		resp := dto.FromBookModel(book)
		return &resp, nil
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("load book: %w", err)
	}

	s.books.Set(ctx, book)
	resp := dto.FromBookModel(book)
	return &resp, nil
}

func (s *bookService) List(ctx context.Context, query dto.ListQuery) (*dto.PaginatedBooksResponse, error) {
	opts, err := listOptions(query, bookSortColumns)
	if err != nil {
		return nil, err
	}

	books, total, err := s.bookRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	items := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		items = append(items, dto.FromBookModel(&books[i]))
	}
	return &dto.PaginatedBooksResponse{
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalElements: total,
		Items:         items,
	}, nil
}

func (s *bookService) Rename(ctx context.Context, id int64, name string) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("load book: %w", err)
	}

	book.Name = strings.TrimSpace(name)
	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update book: %w", err)
	}

	s.books.Invalidate(ctx, id)
	return nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("load book: %w", err)
	}

	open, err := s.loanRepo.CountOpen(ctx, repository.LoanFilter{BookID: &id})
	if err != nil {
		return fmt.Errorf("count open loans: %w", err)
	}
	if open > 0 {
		return ErrBookHasActiveLoan
	}

	rows, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if rows == 0 {
		return ErrBookNotFound
	}

	s.books.Invalidate(ctx, id)
	return nil
}
