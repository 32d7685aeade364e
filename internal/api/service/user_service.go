package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liblend/internal/api/dto"
	"liblend/internal/api/models"
	"liblend/internal/api/repository"

	"gorm.io/gorm"
)

// userSortColumns is the known-safe set of sortable user attributes; the raw
// query-string value never reaches ORDER BY.
var userSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

type UserService interface {
	Create(ctx context.Context, name string) (*models.User, error)
	Get(ctx context.Context, id int64) (*dto.UserDetailResponse, error)
	List(ctx context.Context, query dto.ListQuery) (*dto.PaginatedUsersResponse, error)
	Rename(ctx context.Context, id int64, name string) error
	// Delete refuses while the user has an open loan; closed history survives
	// with its user reference nulled by the store.
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	userRepo repository.UserRepository
	loanRepo repository.LoanRepository
}

func NewUserService(userRepo repository.UserRepository, loanRepo repository.LoanRepository) UserService {
	return &userService{userRepo: userRepo, loanRepo: loanRepo}
}

func (s *userService) Create(ctx context.Context, name string) (*models.User, error) {
	user := &models.User{Name: strings.TrimSpace(name)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*dto.UserDetailResponse, error) {
	user, err := s.userRepo.GetWithLoans(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	detail := dto.FromUserWithLoans(user)
	return &detail, nil
}

func (s *userService) List(ctx context.Context, query dto.ListQuery) (*dto.PaginatedUsersResponse, error) {
	opts, err := listOptions(query, userSortColumns)
	if err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.FromUserModel(&users[i]))
	}
	return &dto.PaginatedUsersResponse{
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalElements: total,
		Items:         items,
	}, nil
}

func (s *userService) Rename(ctx context.Context, id int64, name string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	user.Name = strings.TrimSpace(name)
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	open, err := s.loanRepo.CountOpen(ctx, repository.LoanFilter{UserID: &id})
	if err != nil {
		return fmt.Errorf("count open loans: %w", err)
	}
	if open > 0 {
		return ErrUserHasActiveLoan
	}

	rows, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// listOptions vets the sort field against the entity's whitelist and maps
// the wire query onto repository options. Direction defaults to ascending.
func listOptions(query dto.ListQuery, sortColumns map[string]string) (repository.ListOptions, error) {
	opts := repository.ListOptions{
		NameFilter: strings.TrimSpace(query.Name),
		Page:       query.Page,
		Limit:      query.Limit,
		Descending: strings.EqualFold(query.Order, "DESC"),
	}
	if query.SortBy != "" {
		column, ok := sortColumns[query.SortBy]
		if !ok {
			return opts, ErrInvalidSortField
		}
		opts.SortBy = column
	}
	opts.Normalize()
	return opts, nil
}
