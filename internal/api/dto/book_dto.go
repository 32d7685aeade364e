package dto

import "liblend/internal/api/models"

// CreateBookRequest for adding a new book
type CreateBookRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

// UpdateBookRequest for renaming a book
type UpdateBookRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

// BookResponse carries the stored average score; -1 means the book has never
// been scored.
type BookResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	AverageScore float64 `json:"averageScore"`
}

func FromBookModel(book *models.Book) BookResponse {
	return BookResponse{
		ID:           book.ID,
		Name:         book.Name,
		AverageScore: book.AverageScore,
	}
}

// PaginatedBooksResponse for book listings
type PaginatedBooksResponse struct {
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
	TotalElements int64          `json:"totalElements"`
	Items         []BookResponse `json:"items"`
}
