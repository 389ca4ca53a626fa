package models

// Treatment records the outcome of a completed appointment.
type Treatment struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	AppointmentID uint   `json:"appointment_id" gorm:"not null;index"`
	Diag          string `json:"diag" gorm:"type:text;not null"`
	Presc         string `json:"presc" gorm:"type:text;not null"`
	Notes         string `json:"notes" gorm:"type:text"`
}
