package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingRevoker struct {
	revoked []uint
}

func (r *recordingRevoker) RevokeUser(_ context.Context, userID uint) error {
	r.revoked = append(r.revoked, userID)
	return nil
}

var fixtureSeq atomic.Int64

func newTestService(t *testing.T) (*Service, *recordingRevoker) {
	t.Helper()
	rev := &recordingRevoker{}
	svc := New(database.OpenTest(t), rev, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, rev
}

func mustDepartment(t *testing.T, svc *Service, name string) *models.Department {
	t.Helper()
	dept, err := svc.CreateDepartment(context.Background(), DepartmentInput{Name: name, Desc: name + " dept"})
	require.NoError(t, err)
	return dept
}

func mustDoctor(t *testing.T, svc *Service, deptID uint, fname, lname, spec string) *models.Doctor {
	t.Helper()
	doc, err := svc.CreateDoctor(context.Background(), DoctorInput{
		AccountInput: AccountInput{
			Username: fmt.Sprintf("dr%d", fixtureSeq.Add(1)),
			Password: "doctor-pw",
			FName:    fname,
			LName:    lname,
		},
		Spec:         spec,
		DepartmentID: deptID,
	})
	require.NoError(t, err)
	return doc
}

func mustPatient(t *testing.T, svc *Service, fname, lname, phone string) *models.Patient {
	t.Helper()
	p, err := svc.RegisterPatient(context.Background(), PatientRegistration{
		AccountInput: AccountInput{
			Username: fmt.Sprintf("pt%d", fixtureSeq.Add(1)),
			Password: "patient-pw",
			FName:    fname,
			LName:    lname,
		},
		PatientProfileInput: PatientProfileInput{Age: 40, Gender: "F", Phone: phone},
	})
	require.NoError(t, err)
	return p
}
