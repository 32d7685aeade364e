package dto

import "liblend/internal/api/models"

// CreateUserRequest for registering a new user
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

// UpdateUserRequest for renaming a user
type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,min=3"`
}

// UserResponse for list views
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PastLoan is one closed loan in a user's history. The user's score is kept
// because the loan has been returned.
type PastLoan struct {
	Name      string `json:"name"`
	UserScore *int   `json:"userScore,omitempty"`
}

// PresentLoan is one open loan. No score field: an active loan cannot carry
// a score yet.
type PresentLoan struct {
	Name string `json:"name"`
}

// BorrowHistory partitions a user's loans into returned and still-out.
type BorrowHistory struct {
	Past    []PastLoan    `json:"past"`
	Present []PresentLoan `json:"present"`
}

// UserDetailResponse for fetching a single user with their borrow history
type UserDetailResponse struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Books BorrowHistory `json:"books"`
}

func FromUserModel(user *models.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name}
}

// FromUserWithLoans builds the detail view from a user whose LoanRecords
// (and their books) are preloaded. Records whose book has been deleted keep a
// placeholder-free entry with an empty name rather than being dropped.
func FromUserWithLoans(user *models.User) UserDetailResponse {
	history := BorrowHistory{
		Past:    make([]PastLoan, 0),
		Present: make([]PresentLoan, 0),
	}
	for _, loan := range user.LoanRecords {
		bookName := ""
		if loan.Book != nil {
			bookName = loan.Book.Name
		}
		if loan.Returned() {
			history.Past = append(history.Past, PastLoan{Name: bookName, UserScore: loan.Score})
		} else {
			history.Present = append(history.Present, PresentLoan{Name: bookName})
		}
	}
	return UserDetailResponse{
		ID:    user.ID,
		Name:  user.Name,
		Books: history,
	}
}

// PaginatedUsersResponse for user listings
type PaginatedUsersResponse struct {
	Page          int            `json:"page"`
	PageSize      int            `json:"pageSize"`
	TotalElements int64          `json:"totalElements"`
	Items         []UserResponse `json:"items"`
}
