package services

import (
	"context"
	"strings"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"

	"gorm.io/gorm"
)

// PatientProfileInput holds the patient-editable profile fields.
type PatientProfileInput struct {
	Age        int
	Gender     string
	MedHistory string
	Phone      string
}

func (in PatientProfileInput) validate() error {
	if in.Age < 0 || in.Age > 150 {
		return apperrors.NewValidationError("age is out of range")
	}
	if strings.TrimSpace(in.Gender) == "" {
		return apperrors.NewValidationError("gender is required")
	}
	return nil
}

func (in PatientProfileInput) fields() map[string]interface{} {
	return map[string]interface{}{
		"age":         in.Age,
		"gender":      in.Gender,
		"med_history": in.MedHistory,
		"phone":       in.Phone,
	}
}

// AdminPatientInput is the admin edit form; it also renames the account.
type AdminPatientInput struct {
	FName string
	LName string
	PatientProfileInput
}

// SearchPatients matches q case-insensitively against first name, last
// name, patient id and phone. An empty query lists every patient.
func (s *Service) SearchPatients(ctx context.Context, q string) ([]models.Patient, error) {
	query := s.db.WithContext(ctx).Preload("User").Order("patients.id")

	if q = strings.TrimSpace(q); q != "" {
		where, args := likeAny(likePattern(q),
			"LOWER(users.fname)", "LOWER(users.lname)",
			"CAST(patients.id AS TEXT)", "LOWER(patients.phone)")
		query = query.
			Select("patients.*").
			Joins("JOIN users ON users.id = patients.user_id").
			Where(where, args...)
	}

	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		return nil, apperrors.NewInternalError("search patients", err)
	}
	return patients, nil
}

func (s *Service) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var p models.Patient
	if err := s.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, lookupErr("patient", err)
	}
	return &p, nil
}

// PatientByUser returns the patient profile owned by userID.
func (s *Service) PatientByUser(ctx context.Context, userID uint) (*models.Patient, error) {
	var p models.Patient
	if err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, lookupErr("patient", err)
	}
	return &p, nil
}

// UpdatePatientProfile is the patient's own profile edit.
func (s *Service) UpdatePatientProfile(ctx context.Context, patientID uint, in PatientProfileInput) (*models.Patient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", patientID).Updates(in.fields())
	if res.Error != nil {
		return nil, apperrors.NewInternalError("update patient", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NewNotFoundError("patient not found")
	}
	return s.GetPatient(ctx, patientID)
}

// AdminUpdatePatient edits a patient's profile and names.
func (s *Service) AdminUpdatePatient(ctx context.Context, id uint, in AdminPatientInput) (*models.Patient, error) {
	if err := in.PatientProfileInput.validate(); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Patient
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr("patient", err)
		}
		if err := tx.Model(&models.User{}).Where("id = ?", p.UserID).Updates(map[string]interface{}{
			"fname": in.FName,
			"lname": in.LName,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&p).Updates(in.PatientProfileInput.fields()).Error
	})
	if err != nil {
		return nil, passThrough("update patient", err)
	}
	return s.GetPatient(ctx, id)
}

// DeletePatient removes the patient and its user account. Patients with
// appointment history are refused; blacklist them instead.
func (s *Service) DeletePatient(ctx context.Context, id uint) error {
	var userID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Patient
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr("patient", err)
		}
		var apps int64
		if err := tx.Model(&models.Appointment{}).Where("patient_id = ?", id).Count(&apps).Error; err != nil {
			return err
		}
		if apps > 0 {
			return apperrors.NewRejectedError("patient has appointments")
		}
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		userID = p.UserID
		return tx.Delete(&models.User{}, p.UserID).Error
	})
	if err != nil {
		return passThrough("delete patient", err)
	}

	s.revokeSessions(ctx, userID)
	s.log.Info().Uint("patient_id", id).Msg("patient deleted")
	return nil
}
