package dto

// ReturnBookRequest closes a loan; the score is mandatory on return.
type ReturnBookRequest struct {
	Score int `json:"score" binding:"required,min=1,max=10"`
}

// AmendScoreRequest rewrites the score on an already-returned loan. Pointer
// so that an explicit 0 survives the required check.
type AmendScoreRequest struct {
	NewScore *int `json:"newScore" binding:"required,min=0,max=10"`
}

// ListQuery is the shared query-string shape for user and book listings.
type ListQuery struct {
	Name   string `form:"name"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
