package services

import (
	"context"
	"testing"

	"hospital-gin/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	dept := mustDepartment(t, svc, "Cardiology")
	doc := mustDoctor(t, svc, dept.ID, "John", "Smith", "Cardiologist")

	rows, err := svc.DeclareAvailability(ctx, doc.ID, "2025-03-03", "9-10, 11")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "9", rows[0].StartTime)
	assert.Equal(t, "10", rows[0].EndTime)
	assert.Equal(t, "11", rows[1].StartTime)
	assert.Equal(t, "11", rows[1].EndTime)

	// overlapping ranges are accepted
	_, err = svc.DeclareAvailability(ctx, doc.ID, "2025-03-03", "9-10")
	require.NoError(t, err)

	all, err := svc.ListAvailability(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Smith", all[0].Doctor.User.LName)

	_, err = svc.DeclareAvailability(ctx, doc.ID, "", "9-10")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	_, err = svc.DeclareAvailability(ctx, doc.ID, "2025-03-03", " , ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	_, err = svc.DeclareAvailability(ctx, 999, "2025-03-03", "9-10")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestDoctorDashboard(t *testing.T) {
	svc, _ := newTestService(t) // today is 2025-03-01
	ctx := context.Background()
	dept := mustDepartment(t, svc, "Cardiology")
	doc := mustDoctor(t, svc, dept.ID, "John", "Smith", "Cardiologist")
	ann := mustPatient(t, svc, "Ann", "Lee", "555-0100")
	bob := mustPatient(t, svc, "Bob", "Ray", "555-0101")
	mustPatient(t, svc, "Cy", "Fox", "555-0102")

	inWindow, err := svc.BookAppointment(ctx, ann.ID, doc.ID, "2025-03-08", "09:00")
	require.NoError(t, err)
	today, err := svc.BookAppointment(ctx, bob.ID, doc.ID, "2025-03-01", "15:00")
	require.NoError(t, err)
	_, err = svc.BookAppointment(ctx, ann.ID, doc.ID, "2025-03-09", "09:00")
	require.NoError(t, err)
	_, err = svc.BookAppointment(ctx, ann.ID, doc.ID, "2025-02-28", "09:00")
	require.NoError(t, err)
	_, err = svc.BookAppointment(ctx, ann.ID, doc.ID, "soon", "09:00")
	require.NoError(t, err)

	dash, err := svc.DoctorDashboard(ctx, doc)
	require.NoError(t, err)

	require.Len(t, dash.Upcoming, 2)
	assert.Equal(t, today.ID, dash.Upcoming[0].ID)
	assert.Equal(t, inWindow.ID, dash.Upcoming[1].ID)

	require.Len(t, dash.AssignedPatients, 2)
	assert.Equal(t, ann.ID, dash.AssignedPatients[0].ID)
	assert.Equal(t, bob.ID, dash.AssignedPatients[1].ID)
}

func TestPatientDashboardAndHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	dept := mustDepartment(t, svc, "Cardiology")
	doc := mustDoctor(t, svc, dept.ID, "John", "Smith", "Cardiologist")
	otherDoc := mustDoctor(t, svc, dept.ID, "Jane", "Doe", "Cardiologist")
	ann := mustPatient(t, svc, "Ann", "Lee", "555-0100")
	bob := mustPatient(t, svc, "Bob", "Ray", "555-0101")

	mine, err := svc.BookAppointment(ctx, ann.ID, doc.ID, "2025-03-02", "09:00")
	require.NoError(t, err)
	_, err = svc.BookAppointment(ctx, ann.ID, otherDoc.ID, "2025-03-01", "09:00")
	require.NoError(t, err)
	theirs, err := svc.BookAppointment(ctx, bob.ID, doc.ID, "2025-03-02", "10:00")
	require.NoError(t, err)
	_, err = svc.RecordTreatment(ctx, doc.ID, mine.ID, TreatmentInput{Diag: "d1", Presc: "p1"})
	require.NoError(t, err)
	_, err = svc.RecordTreatment(ctx, doc.ID, theirs.ID, TreatmentInput{Diag: "d2", Presc: "p2"})
	require.NoError(t, err)
	_, err = svc.DeclareAvailability(ctx, doc.ID, "2025-03-04", "9-10")
	require.NoError(t, err)

	dash, err := svc.PatientDashboard(ctx, ann)
	require.NoError(t, err)
	assert.Len(t, dash.Departments, 1)
	assert.Len(t, dash.Availability, 1)
	require.Len(t, dash.Appointments, 2)
	assert.Equal(t, "2025-03-01", dash.Appointments[0].Date)
	require.Len(t, dash.Treatments, 1, "only treatments of own appointments")
	assert.Equal(t, "d1", dash.Treatments[0].Diag)

	hist, err := svc.PatientHistory(ctx, doc.ID, ann.ID)
	require.NoError(t, err)
	require.Len(t, hist.Appointments, 1)
	assert.Equal(t, mine.ID, hist.Appointments[0].ID)
	require.Len(t, hist.Treatments, 1)

	_, err = svc.PatientHistory(ctx, doc.ID, 999)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

	stats, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, AdminStats{Departments: 1, Doctors: 2, Patients: 2, Appointments: 3}, *stats)
}
