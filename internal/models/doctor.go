package models

// Doctor defines the doctor profile attached to a User with RoleDoctor.
type Doctor struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	UserID        uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	Spec          string `json:"spec" gorm:"size:120;not null"`
	DepartmentID  uint   `json:"department_id" gorm:"not null;index"`
	Bio           string `json:"bio" gorm:"type:text"`
	IsBlacklisted bool   `json:"is_blacklisted" gorm:"not null;default:false"`

	User       User       `json:"user" gorm:"foreignKey:UserID"`
	Department Department `json:"department" gorm:"foreignKey:DepartmentID"`
}
