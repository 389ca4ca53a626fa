package models

// AppointmentStatus is the lifecycle state of an appointment.
// Booked is the only non-terminal state.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
)

// Terminal reports whether no further transition is accepted.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment books a patient into a (doctor, date, time) slot.
// The slot index is unique regardless of status, so a cancelled
// appointment still holds its slot.
type Appointment struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	PatientID uint              `json:"patient_id" gorm:"not null;index"`
	DoctorID  uint              `json:"doctor_id" gorm:"not null;uniqueIndex:idx_appointment_slot,priority:1"`
	Date      string            `json:"date" gorm:"size:20;not null;uniqueIndex:idx_appointment_slot,priority:2"`
	Time      string            `json:"time" gorm:"size:20;not null;uniqueIndex:idx_appointment_slot,priority:3"`
	Status    AppointmentStatus `json:"status" gorm:"size:50;not null;index"`

	Patient Patient `json:"patient" gorm:"foreignKey:PatientID"`
	Doctor  Doctor  `json:"doctor" gorm:"foreignKey:DoctorID"`
}
