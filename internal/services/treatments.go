package services

import (
	"context"
	"strings"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TreatmentInput is the add-treatment form.
type TreatmentInput struct {
	Diag  string
	Presc string
	Notes string
}

func (in TreatmentInput) validate() error {
	if strings.TrimSpace(in.Diag) == "" {
		return apperrors.NewValidationError("diagnosis is required")
	}
	if strings.TrimSpace(in.Presc) == "" {
		return apperrors.NewValidationError("prescription is required")
	}
	return nil
}

// TreatmentForm returns the appointment a doctor is about to treat,
// applying the same ownership check as RecordTreatment.
func (s *Service) TreatmentForm(ctx context.Context, doctorID, appointmentID uint) (*models.Appointment, error) {
	var app models.Appointment
	if err := s.db.WithContext(ctx).Preload("Patient.User").First(&app, appointmentID).Error; err != nil {
		return nil, lookupErr("appointment", err)
	}
	if app.DoctorID != doctorID {
		return nil, apperrors.ErrForbidden
	}
	return &app, nil
}

// RecordTreatment completes a Booked appointment of doctorID. The
// treatment row and the Completed status are written in one transaction.
func (s *Service) RecordTreatment(ctx context.Context, doctorID, appointmentID uint, in TreatmentInput) (*models.Treatment, error) {
	var t models.Treatment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owns := func(a models.Appointment) bool { return a.DoctorID == doctorID }
		var app models.Appointment
		if err := tx.First(&app, appointmentID).Error; err != nil {
			return lookupErr("appointment", err)
		}
		if !owns(app) {
			return apperrors.ErrForbidden
		}
		if err := in.validate(); err != nil {
			return err
		}
		if _, err := transition(tx, appointmentID, owns, models.StatusCompleted); err != nil {
			return err
		}
		t = models.Treatment{
			AppointmentID: appointmentID,
			Diag:          in.Diag,
			Presc:         in.Presc,
			Notes:         in.Notes,
		}
		return tx.Omit(clause.Associations).Create(&t).Error
	})
	if err != nil {
		return nil, passThrough("record treatment", err)
	}

	s.log.Info().Uint("appointment_id", appointmentID).Uint("treatment_id", t.ID).Msg("treatment recorded")
	return &t, nil
}

// TreatmentsFor returns the treatments of the given appointments.
func (s *Service) TreatmentsFor(ctx context.Context, apps []models.Appointment) ([]models.Treatment, error) {
	if len(apps) == 0 {
		return nil, nil
	}
	ids := make([]uint, len(apps))
	for i, a := range apps {
		ids[i] = a.ID
	}
	var ts []models.Treatment
	if err := s.db.WithContext(ctx).Where("appointment_id IN ?", ids).Order("id").Find(&ts).Error; err != nil {
		return nil, apperrors.NewInternalError("list treatments", err)
	}
	return ts, nil
}
