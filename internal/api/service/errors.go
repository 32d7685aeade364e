package service

import "errors"

// Business-rule failures, matched by the handlers with errors.Is. Anything
// not in this set is a storage failure and surfaces to the caller as-is.
var (
	// Not found
	ErrUserNotFound        = errors.New("user not found")
	ErrBookNotFound        = errors.New("book not found")
	ErrUserAndBookNotFound = errors.New("user and book not found")
	ErrLoanNotFound        = errors.New("no active borrow found for this book and user")
	ErrClosedLoanNotFound  = errors.New("borrow record not found")
	ErrLoanRecordNotFound  = errors.New("no loan record found for this book and user")

	// Conflicts
	ErrAlreadyBorrowedByUser = errors.New("user already borrowed this book")
	ErrBookAlreadyBorrowed   = errors.New("this book is currently borrowed by another user")
	ErrUserHasActiveLoan     = errors.New("user still has an open loan")
	ErrBookHasActiveLoan     = errors.New("book is currently on loan")
	ErrDuplicateName         = errors.New("an entry with the same name already exists")

	// Invalid input, re-checked here even though the API boundary validates
	ErrInvalidScore     = errors.New("score must be an integer between 1 and 10")
	ErrInvalidSortField = errors.New("unsupported sort field")
)

// NotFound reports whether err is one of the not-found outcomes.
func NotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrUserAndBookNotFound) ||
		errors.Is(err, ErrLoanNotFound) ||
		errors.Is(err, ErrClosedLoanNotFound) ||
		errors.Is(err, ErrLoanRecordNotFound)
}

// Conflict reports whether err is a loan or uniqueness invariant violation.
func Conflict(err error) bool {
	return errors.Is(err, ErrAlreadyBorrowedByUser) ||
		errors.Is(err, ErrBookAlreadyBorrowed) ||
		errors.Is(err, ErrUserHasActiveLoan) ||
		errors.Is(err, ErrBookHasActiveLoan) ||
		errors.Is(err, ErrDuplicateName)
}

// Invalid reports whether err is a malformed-input rejection.
func Invalid(err error) bool {
	return errors.Is(err, ErrInvalidScore) || errors.Is(err, ErrInvalidSortField)
}
