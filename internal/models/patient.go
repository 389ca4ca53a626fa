package models

// Patient defines the patient profile attached to a User with RolePatient.
type Patient struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	UserID        uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	Age           int    `json:"age" gorm:"not null"`
	Gender        string `json:"gender" gorm:"size:20;not null"`
	MedHistory    string `json:"med_history" gorm:"type:text"`
	Phone         string `json:"phone" gorm:"size:20;index"`
	IsBlacklisted bool   `json:"is_blacklisted" gorm:"not null;default:false"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
