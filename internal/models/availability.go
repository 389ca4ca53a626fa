package models

// Availability is a declared working range of a doctor on a date.
// Times are kept as the doctor typed them; overlaps are allowed.
type Availability struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	DoctorID  uint   `json:"doctor_id" gorm:"not null;index"`
	Date      string `json:"date" gorm:"size:20;not null"`
	StartTime string `json:"start_time" gorm:"size:20;not null"`
	EndTime   string `json:"end_time" gorm:"size:20;not null"`

	Doctor Doctor `json:"doctor" gorm:"foreignKey:DoctorID"`
}

// TableName keeps the singular table name.
func (Availability) TableName() string {
	return "availability"
}
