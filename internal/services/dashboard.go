package services

import (
	"context"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/models"
	"hospital-gin/internal/utils"
)

// UpcomingWindowDays is how far ahead the doctor dashboard looks.
const UpcomingWindowDays = 7

type AdminStats struct {
	Departments  int64 `json:"total_depts"`
	Doctors      int64 `json:"total_doctors"`
	Patients     int64 `json:"total_patients"`
	Appointments int64 `json:"total_apps"`
}

func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	var st AdminStats
	db := s.db.WithContext(ctx)
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.Department{}, &st.Departments},
		{&models.Doctor{}, &st.Doctors},
		{&models.Patient{}, &st.Patients},
		{&models.Appointment{}, &st.Appointments},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, apperrors.NewInternalError("count rows", err)
		}
	}
	return &st, nil
}

type DoctorDashboard struct {
	Doctor           *models.Doctor       `json:"doctor"`
	Upcoming         []models.Appointment `json:"upcoming_appointments"`
	AssignedPatients []models.Patient     `json:"assigned_patients"`
}

// DoctorDashboard lists the doctor's appointments dated within the next
// UpcomingWindowDays days and every patient the doctor has seen or will see.
func (s *Service) DoctorDashboard(ctx context.Context, doctor *models.Doctor) (*DoctorDashboard, error) {
	apps, err := s.DoctorAppointments(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dash := &DoctorDashboard{Doctor: doctor, Upcoming: []models.Appointment{}, AssignedPatients: []models.Patient{}}
	seen := make(map[uint]struct{})
	var pids []uint
	for _, a := range apps {
		if utils.WithinDays(a.Date, now, UpcomingWindowDays) {
			dash.Upcoming = append(dash.Upcoming, a)
		}
		if _, ok := seen[a.PatientID]; !ok {
			seen[a.PatientID] = struct{}{}
			pids = append(pids, a.PatientID)
		}
	}

	if len(pids) > 0 {
		if err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", pids).Order("id").Find(&dash.AssignedPatients).Error; err != nil {
			return nil, apperrors.NewInternalError("list assigned patients", err)
		}
	}
	return dash, nil
}

type PatientDashboard struct {
	Patient      *models.Patient       `json:"patient"`
	Departments  []models.Department   `json:"depts"`
	Availability []models.Availability `json:"availability"`
	Appointments []models.Appointment  `json:"apps"`
	Treatments   []models.Treatment    `json:"treatments"`
}

func (s *Service) PatientDashboard(ctx context.Context, patient *models.Patient) (*PatientDashboard, error) {
	depts, err := s.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	avail, err := s.ListAvailability(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.PatientAppointments(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	ts, err := s.TreatmentsFor(ctx, apps)
	if err != nil {
		return nil, err
	}
	return &PatientDashboard{
		Patient:      patient,
		Departments:  depts,
		Availability: avail,
		Appointments: apps,
		Treatments:   ts,
	}, nil
}

type PatientHistory struct {
	Patient      *models.Patient      `json:"patient"`
	Appointments []models.Appointment `json:"apps"`
	Treatments   []models.Treatment   `json:"treatments"`
}

// PatientHistory returns what passed between doctorID and patientID.
func (s *Service) PatientHistory(ctx context.Context, doctorID, patientID uint) (*PatientHistory, error) {
	patient, err := s.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	var apps []models.Appointment
	err = s.db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Order("date, time, id").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.NewInternalError("list patient history", err)
	}
	ts, err := s.TreatmentsFor(ctx, apps)
	if err != nil {
		return nil, err
	}
	return &PatientHistory{Patient: patient, Appointments: apps, Treatments: ts}, nil
}
