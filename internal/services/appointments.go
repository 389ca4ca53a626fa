package services

import (
	"context"
	"fmt"
	"strings"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookAppointment books patientID into the (doctorID, date, time) slot.
//
// A blacklisted doctor is refused with apperrors.ErrDoctorUnavailable
// before the slot is looked at. Any existing appointment on the slot,
// cancelled ones included, refuses the booking with apperrors.ErrSlotTaken.
// The check and the insert share a transaction and the slot carries a
// unique index, so concurrent bookings cannot both succeed.
func (s *Service) BookAppointment(ctx context.Context, patientID, doctorID uint, date, time string) (*models.Appointment, error) {
	date, time = strings.TrimSpace(date), strings.TrimSpace(time)
	if date == "" || time == "" {
		return nil, apperrors.NewValidationError("date and time are required")
	}

	var app models.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, patientID).Error; err != nil {
			return lookupErr("patient", err)
		}
		if patient.IsBlacklisted {
			return apperrors.ErrPatientBlacklisted
		}

		var doctor models.Doctor
		if err := tx.First(&doctor, doctorID).Error; err != nil {
			return lookupErr("doctor", err)
		}
		if doctor.IsBlacklisted {
			return apperrors.ErrDoctorUnavailable
		}

		var taken int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND date = ? AND time = ?", doctorID, date, time).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return apperrors.ErrSlotTaken
		}

		app = models.Appointment{
			PatientID: patientID,
			DoctorID:  doctorID,
			Date:      date,
			Time:      time,
			Status:    models.StatusBooked,
		}
		if err := tx.Omit(clause.Associations).Create(&app).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrSlotTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("book appointment", err)
	}

	s.log.Info().
		Uint("appointment_id", app.ID).
		Uint("patient_id", patientID).
		Uint("doctor_id", doctorID).
		Str("date", date).
		Str("time", time).
		Msg("appointment booked")
	return &app, nil
}

func transitionRejected(status models.AppointmentStatus) error {
	return apperrors.NewRejectedError(fmt.Sprintf("appointment is already %s", strings.ToLower(string(status))))
}

// transition moves a Booked appointment to status once owns accepts it.
// The update is conditional on the row still being Booked.
func transition(tx *gorm.DB, appointmentID uint, owns func(models.Appointment) bool, status models.AppointmentStatus) (*models.Appointment, error) {
	var app models.Appointment
	if err := tx.First(&app, appointmentID).Error; err != nil {
		return nil, lookupErr("appointment", err)
	}
	if !owns(app) {
		return nil, apperrors.ErrForbidden
	}
	if app.Status.Terminal() {
		return nil, transitionRejected(app.Status)
	}

	res := tx.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, models.StatusBooked).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.First(&app, appointmentID).Error; err != nil {
			return nil, err
		}
		return nil, transitionRejected(app.Status)
	}
	app.Status = status
	return &app, nil
}

func (s *Service) cancel(ctx context.Context, appointmentID uint, owns func(models.Appointment) bool) (*models.Appointment, error) {
	var app *models.Appointment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		app, err = transition(tx, appointmentID, owns, models.StatusCancelled)
		return err
	})
	if err != nil {
		return nil, passThrough("cancel appointment", err)
	}
	s.log.Info().Uint("appointment_id", appointmentID).Msg("appointment cancelled")
	return app, nil
}

// CancelAsPatient cancels one of the patient's own Booked appointments.
func (s *Service) CancelAsPatient(ctx context.Context, patientID, appointmentID uint) (*models.Appointment, error) {
	return s.cancel(ctx, appointmentID, func(a models.Appointment) bool { return a.PatientID == patientID })
}

// CancelAsDoctor cancels one of the doctor's own Booked appointments.
func (s *Service) CancelAsDoctor(ctx context.Context, doctorID, appointmentID uint) (*models.Appointment, error) {
	return s.cancel(ctx, appointmentID, func(a models.Appointment) bool { return a.DoctorID == doctorID })
}

// ListAppointments returns every appointment, or only those in status when
// it is set, ordered by date and time.
func (s *Service) ListAppointments(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Preload("Doctor.Department").
		Order("date, time, id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, apperrors.NewInternalError("list appointments", err)
	}
	return apps, nil
}

func (s *Service) PatientAppointments(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Doctor.Department").
		Where("patient_id = ?", patientID).
		Order("date, time, id").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.NewInternalError("list patient appointments", err)
	}
	return apps, nil
}

func (s *Service) DoctorAppointments(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var apps []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Patient.User").
		Where("doctor_id = ?", doctorID).
		Order("date, time, id").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.NewInternalError("list doctor appointments", err)
	}
	return apps, nil
}
