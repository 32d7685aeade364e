package repository

import (
	"context"

	"liblend/internal/api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetWithLoans(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, opts ListOptions) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithLoans loads the user together with their full loan history, book
// names included, ordered oldest borrow first.
func (r *userRepository) GetWithLoans(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("LoanRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("borrowed_date ASC")
		}).
		Preload("LoanRecords.Book").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, opts ListOptions) ([]models.User, int64, error) {
	opts.Normalize()

	query := r.db.WithContext(ctx).Model(&models.User{})
	if opts.NameFilter != "" {
		query = query.Where("name LIKE ?", opts.likePattern())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.
		Order(opts.order("id")).
		Limit(opts.Limit).
		Offset(opts.offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	return result.RowsAffected, result.Error
}
