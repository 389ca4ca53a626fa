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

// DoctorInput is the admin add/edit doctor form. On edit an empty
// password keeps the current one.
type DoctorInput struct {
	AccountInput
	Spec         string
	DepartmentID uint
	Bio          string
}

func (in DoctorInput) validate(creating bool) error {
	if err := in.AccountInput.validate(creating); err != nil {
		return err
	}
	if strings.TrimSpace(in.Spec) == "" {
		return apperrors.NewValidationError("specialty is required")
	}
	if in.DepartmentID == 0 {
		return apperrors.NewValidationError("department is required")
	}
	return nil
}

func requireDepartment(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&models.Department{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewNotFoundError("department not found")
	}
	return nil
}

// SearchDoctors matches q case-insensitively against first name, last
// name, username, specialty, department name and the doctor id. An empty
// query lists every doctor.
func (s *Service) SearchDoctors(ctx context.Context, q string) ([]models.Doctor, error) {
	query := s.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Order("doctors.id")

	if q = strings.TrimSpace(q); q != "" {
		where, args := likeAny(likePattern(q),
			"LOWER(users.fname)", "LOWER(users.lname)", "LOWER(users.username)",
			"LOWER(doctors.spec)", "LOWER(departments.name)", "CAST(doctors.id AS TEXT)")
		query = query.
			Select("doctors.*").
			Joins("JOIN users ON users.id = doctors.user_id").
			Joins("JOIN departments ON departments.id = doctors.department_id").
			Where(where, args...)
	}

	var docs []models.Doctor
	if err := query.Find(&docs).Error; err != nil {
		return nil, apperrors.NewInternalError("search doctors", err)
	}
	return docs, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	var doc models.Doctor
	if err := s.db.WithContext(ctx).Preload("User").Preload("Department").First(&doc, id).Error; err != nil {
		return nil, lookupErr("doctor", err)
	}
	return &doc, nil
}

// DoctorByUser returns the doctor profile owned by userID.
func (s *Service) DoctorByUser(ctx context.Context, userID uint) (*models.Doctor, error) {
	var doc models.Doctor
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Where("user_id = ?", userID).
		First(&doc).Error
	if err != nil {
		return nil, lookupErr("doctor", err)
	}
	return &doc, nil
}

// CreateDoctor creates the doctor's user account and profile together.
func (s *Service) CreateDoctor(ctx context.Context, in DoctorInput) (*models.Doctor, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	var doc models.Doctor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireDepartment(tx, in.DepartmentID); err != nil {
			return err
		}
		user, err := createUser(tx, in.AccountInput, models.RoleDoctor)
		if err != nil {
			return err
		}
		doc = models.Doctor{
			UserID:       user.ID,
			Spec:         strings.TrimSpace(in.Spec),
			DepartmentID: in.DepartmentID,
			Bio:          in.Bio,
		}
		if err := tx.Omit(clause.Associations).Create(&doc).Error; err != nil {
			return err
		}
		doc.User = *user
		return nil
	})
	if err != nil {
		return nil, passThrough("create doctor", err)
	}

	s.log.Info().Uint("doctor_id", doc.ID).Uint("department_id", doc.DepartmentID).Msg("doctor created")
	return &doc, nil
}

// UpdateDoctor edits the doctor profile and its account. The role is never touched.
func (s *Service) UpdateDoctor(ctx context.Context, id uint, in DoctorInput) (*models.Doctor, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Doctor
		if err := tx.First(&doc, id).Error; err != nil {
			return lookupErr("doctor", err)
		}
		if err := requireDepartment(tx, in.DepartmentID); err != nil {
			return err
		}

		userFields := map[string]interface{}{
			"username": strings.TrimSpace(in.Username),
			"fname":    in.FName,
			"lname":    in.LName,
		}
		if in.Password != "" {
			hash, err := utils.HashPassword(in.Password)
			if err != nil {
				return err
			}
			userFields["password"] = hash
		}
		if err := tx.Model(&models.User{}).Where("id = ?", doc.UserID).Updates(userFields).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.NewConflictError("username already taken")
			}
			return err
		}

		return tx.Model(&doc).Updates(map[string]interface{}{
			"spec":          strings.TrimSpace(in.Spec),
			"department_id": in.DepartmentID,
			"bio":           in.Bio,
		}).Error
	})
	if err != nil {
		return nil, passThrough("update doctor", err)
	}
	return s.GetDoctor(ctx, id)
}

// DeleteDoctor removes the doctor, its availability and its user account.
// Doctors with appointment history are refused; blacklist them instead.
func (s *Service) DeleteDoctor(ctx context.Context, id uint) error {
	var userID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Doctor
		if err := tx.First(&doc, id).Error; err != nil {
			return lookupErr("doctor", err)
		}
		var apps int64
		if err := tx.Model(&models.Appointment{}).Where("doctor_id = ?", id).Count(&apps).Error; err != nil {
			return err
		}
		if apps > 0 {
			return apperrors.NewRejectedError("doctor has appointments")
		}
		if err := tx.Where("doctor_id = ?", id).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&doc).Error; err != nil {
			return err
		}
		userID = doc.UserID
		return tx.Delete(&models.User{}, doc.UserID).Error
	})
	if err != nil {
		return passThrough("delete doctor", err)
	}

	s.revokeSessions(ctx, userID)
	s.log.Info().Uint("doctor_id", id).Msg("doctor deleted")
	return nil
}
