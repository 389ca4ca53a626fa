package services

import (
	"context"
	"strings"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"

	"gorm.io/gorm"
)

// DepartmentInput is the add/edit department form.
type DepartmentInput struct {
	Name string
	Desc string
}

func (in DepartmentInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("department name is required")
	}
	return nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	if err := s.db.WithContext(ctx).Order("id").Find(&depts).Error; err != nil {
		return nil, apperrors.NewInternalError("list departments", err)
	}
	return depts, nil
}

func (s *Service) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := s.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, lookupErr("department", err)
	}
	return &dept, nil
}

func (s *Service) CreateDepartment(ctx context.Context, in DepartmentInput) (*models.Department, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	dept := models.Department{Name: strings.TrimSpace(in.Name), Desc: in.Desc}
	if err := s.db.WithContext(ctx).Create(&dept).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("department name already exists")
		}
		return nil, apperrors.NewInternalError("create department", err)
	}
	return &dept, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id uint, in DepartmentInput) (*models.Department, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	dept, err := s.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	dept.Name = strings.TrimSpace(in.Name)
	dept.Desc = in.Desc
	if err := s.db.WithContext(ctx).Save(dept).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("department name already exists")
		}
		return nil, apperrors.NewInternalError("update department", err)
	}
	return dept, nil
}

// DeleteDepartment removes an empty department. Departments that still
// have doctors are refused.
func (s *Service) DeleteDepartment(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dept models.Department
		if err := tx.First(&dept, id).Error; err != nil {
			return lookupErr("department", err)
		}
		var doctors int64
		if err := tx.Model(&models.Doctor{}).Where("department_id = ?", id).Count(&doctors).Error; err != nil {
			return err
		}
		if doctors > 0 {
			return apperrors.NewRejectedError("department has doctors")
		}
		return tx.Delete(&dept).Error
	})
	if err != nil {
		return passThrough("delete department", err)
	}
	return nil
}
