package services

import (
	"context"
	"strings"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"
	"hospital-gin/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeclareAvailability stores one Availability row per token of slots (see
// utils.ParseSlots). Malformed tokens are stored whole rather than refused.
func (s *Service) DeclareAvailability(ctx context.Context, doctorID uint, date, slots string) ([]models.Availability, error) {
	date = strings.TrimSpace(date)
	ranges := utils.ParseSlots(slots)
	if date == "" || len(ranges) == 0 {
		return nil, apperrors.NewValidationError("date and slots are required")
	}

	rows := make([]models.Availability, len(ranges))
	for i, r := range ranges {
		rows[i] = models.Availability{
			DoctorID:  doctorID,
			Date:      date,
			StartTime: r.Start,
			EndTime:   r.End,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.First(&doctor, doctorID).Error; err != nil {
			return lookupErr("doctor", err)
		}
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
	if err != nil {
		return nil, passThrough("declare availability", err)
	}

	s.log.Info().Uint("doctor_id", doctorID).Str("date", date).Int("slots", len(rows)).Msg("availability declared")
	return rows, nil
}

// ListAvailability returns every declared slot with its doctor.
func (s *Service) ListAvailability(ctx context.Context) ([]models.Availability, error) {
	var rows []models.Availability
	err := s.db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Doctor.Department").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewInternalError("list availability", err)
	}
	return rows, nil
}
