package services

import (
	"context"
	"errors"
	"strings"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"
	"hospital-gin/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Authenticate returns the user matching username and password, restricted
// to role unless role is empty. Wrong credentials yield
// apperrors.ErrInvalidCredentials; a deactivated account yields
// apperrors.ErrAccountBlacklisted.
func (s *Service) Authenticate(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	q := s.db.WithContext(ctx).Where("username = ?", username)
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.NewInternalError("look up user", err)
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Info().Uint("user_id", user.ID).Msg("login refused for blacklisted account")
		return nil, apperrors.ErrAccountBlacklisted
	}
	return &user, nil
}

// AccountInput carries the User half of a doctor or patient.
type AccountInput struct {
	Username string
	Password string
	FName    string
	LName    string
}

func (in AccountInput) validate(requirePassword bool) error {
	if strings.TrimSpace(in.Username) == "" {
		return apperrors.NewValidationError("username is required")
	}
	if requirePassword && in.Password == "" {
		return apperrors.NewValidationError("password is required")
	}
	return nil
}

func createUser(tx *gorm.DB, in AccountInput, role models.Role) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("hash password", err)
	}
	user := &models.User{
		Username: strings.TrimSpace(in.Username),
		Password: hash,
		Role:     role,
		FName:    in.FName,
		LName:    in.LName,
		IsActive: true,
	}
	if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("username already taken")
		}
		return nil, apperrors.NewInternalError("create user", err)
	}
	return user, nil
}

// PatientRegistration is the open self-registration form.
type PatientRegistration struct {
	AccountInput
	PatientProfileInput
}

// RegisterPatient creates a patient account and its profile together.
func (s *Service) RegisterPatient(ctx context.Context, in PatientRegistration) (*models.Patient, error) {
	if err := in.AccountInput.validate(true); err != nil {
		return nil, err
	}
	if err := in.PatientProfileInput.validate(); err != nil {
		return nil, err
	}

	var patient models.Patient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := createUser(tx, in.AccountInput, models.RolePatient)
		if err != nil {
			return err
		}
		patient = models.Patient{
			UserID:     user.ID,
			Age:        in.Age,
			Gender:     in.Gender,
			MedHistory: in.MedHistory,
			Phone:      in.Phone,
		}
		if err := tx.Omit(clause.Associations).Create(&patient).Error; err != nil {
			return err
		}
		patient.User = *user
		return nil
	})
	if err != nil {
		return nil, passThrough("register patient", err)
	}

	s.log.Info().Uint("patient_id", patient.ID).Msg("patient registered")
	return &patient, nil
}
