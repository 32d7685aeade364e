package repository

import (
	"context"

	"liblend/internal/api/models"

	"gorm.io/gorm"
)

// BookRepository defines the interface for book data operations. Update is
// also the write path for average score changes made by the rating service.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, opts ListOptions) ([]models.Book, int64, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, opts ListOptions) ([]models.Book, int64, error) {
	opts.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Book{})
	if opts.NameFilter != "" {
		query = query.Where("name LIKE ?", opts.likePattern())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []models.Book
	err := query.
		Order(opts.order("id")).
		Limit(opts.Limit).
		Offset(opts.offset()).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

func (r *bookRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	return result.RowsAffected, result.Error
}
