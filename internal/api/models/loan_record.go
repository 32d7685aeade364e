package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanRecord tracks one borrow of one book by one user. ReturnedDate == nil
// means the loan is still open; Score is only ever set on closed records.
// User and book references are nullable so that deleting either entity keeps
// the historical record (FK is SET NULL, not CASCADE).
type LoanRecord struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	LoanUid      string     `json:"loanUid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID       *int64     `json:"user_id" gorm:"index"`
	BookID       *int64     `json:"book_id" gorm:"index"`
	BorrowedDate time.Time  `json:"borrowedDate" gorm:"not null"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty"`
	Score        *int       `json:"score,omitempty"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:SET NULL"`
}

// BeforeCreate hook to set the loan UID before creating a record
func (l *LoanRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if l.LoanUid == "" {
		l.LoanUid = uuid.New().String()
	}
	return
}

// Returned reports whether the loan is closed.
func (l *LoanRecord) Returned() bool {
	return l.ReturnedDate != nil
}

func (LoanRecord) TableName() string {
	return "loan_records"
}
