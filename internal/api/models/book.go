package models

// UnscoredAverage is stored while a book has no scored loan records. It is
// deliberately not 0, which would be indistinguishable from a real low score.
const UnscoredAverage = -1

type Book struct {
	ID           int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string  `json:"name" gorm:"uniqueIndex;size:255;not null"`
	AverageScore float64 `json:"averageScore" gorm:"not null;default:-1"`

	// Associations
	LoanRecords []LoanRecord `json:"loan_records,omitempty" gorm:"foreignKey:BookID"`
}

func (Book) TableName() string {
	return "books"
}
