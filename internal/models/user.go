package models

// User is the identity root. Doctor and Patient rows extend it 1:1.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Password string `json:"-" gorm:"size:120;not null"` // bcrypt hash
	Role     Role   `json:"role" gorm:"size:50;not null;index"`
	FName    string `json:"fname" gorm:"column:fname;size:100"`
	LName    string `json:"lname" gorm:"column:lname;size:100"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`
}
