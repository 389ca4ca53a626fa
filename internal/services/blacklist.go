package services

import (
	"context"

	"hospital-gin/internal/models"

	"gorm.io/gorm"
)

// BlacklistDoctor flags the doctor, deactivates its account and drops its
// sessions. New bookings against the doctor are refused from then on.
func (s *Service) BlacklistDoctor(ctx context.Context, id uint) error {
	var doc models.Doctor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, id).Error; err != nil {
			return lookupErr("doctor", err)
		}
		if err := tx.Model(&doc).Update("is_blacklisted", true).Error; err != nil {
			return err
		}
		return deactivateUser(tx, doc.UserID)
	})
	if err != nil {
		return passThrough("blacklist doctor", err)
	}

	s.revokeSessions(ctx, doc.UserID)
	s.log.Info().Uint("doctor_id", id).Uint("user_id", doc.UserID).Msg("doctor blacklisted")
	return nil
}

// BlacklistPatient flags the patient, deactivates its account and drops its sessions.
func (s *Service) BlacklistPatient(ctx context.Context, id uint) error {
	var p models.Patient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return lookupErr("patient", err)
		}
		if err := tx.Model(&p).Update("is_blacklisted", true).Error; err != nil {
			return err
		}
		return deactivateUser(tx, p.UserID)
	})
	if err != nil {
		return passThrough("blacklist patient", err)
	}

	s.revokeSessions(ctx, p.UserID)
	s.log.Info().Uint("patient_id", id).Uint("user_id", p.UserID).Msg("patient blacklisted")
	return nil
}

func deactivateUser(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false).Error
}
