package models

type User struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`

	// Associations
	LoanRecords []LoanRecord `json:"loan_records,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
