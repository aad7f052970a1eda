package student

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/schoolerp/backend/internal/domain/shared"
	"github.com/schoolerp/backend/internal/domain/student"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*student.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByAdmissionNumber(ctx context.Context, admissionNumber string) (*student.Student, error) {
	args := m.Called(ctx, admissionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context, filter student.Filter) ([]student.Student, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindActive(ctx context.Context) ([]student.Student, error) {
	args := m.Called(ctx)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) FindActiveByLevel(ctx context.Context, level string) ([]student.Student, error) {
	args := m.Called(ctx, level)
	return args.Get(0).([]student.Student), args.Error(1)
}

func (m *MockStudentRepository) Count(ctx context.Context, filter student.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, s *student.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestStudentService_EnrollStudent(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := NewStudentService(repo)

	repo.On("FindByAdmissionNumber", mock.Anything, "ADM/2026/0042").Return(nil, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*student.Student")).Return(nil)

	resp, err := svc.EnrollStudent(context.Background(), EnrollStudentRequest{
		AdmissionNumber: "ADM/2026/0042",
		FullName:        "Adaeze Okafor",
		Level:           "JSS1",
		GuardianName:    "Ngozi Okafor",
		GuardianPhone:   "+2348012345678",
	})

	require.NoError(t, err)
	assert.Equal(t, "ADM/2026/0042", resp.AdmissionNumber)
	assert.Equal(t, "Ngozi Okafor", resp.GuardianName)
	assert.Equal(t, string(student.StatusActive), resp.Status)
}

func TestStudentService_EnrollStudent_DuplicateAdmissionNumber(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := NewStudentService(repo)

	existing, err := student.NewStudent("ADM/2026/0042", "Adaeze Okafor", "JSS1")
	require.NoError(t, err)
	repo.On("FindByAdmissionNumber", mock.Anything, "ADM/2026/0042").Return(existing, nil)

	_, err = svc.EnrollStudent(context.Background(), EnrollStudentRequest{
		AdmissionNumber: "ADM/2026/0042",
		FullName:        "Someone Else",
		Level:           "JSS1",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestStudentService_PromoteStudent(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := NewStudentService(repo)

	s, err := student.NewStudent("ADM/2026/0042", "Adaeze Okafor", "JSS1")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
	repo.On("Save", mock.Anything, s).Return(nil)

	resp, err := svc.PromoteStudent(context.Background(), s.ID, PromoteStudentRequest{Level: "JSS2"})
	require.NoError(t, err)
	assert.Equal(t, "JSS2", resp.Level)
}

func TestStudentService_DeactivateStudent_NotFound(t *testing.T) {
	repo := new(MockStudentRepository)
	svc := NewStudentService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.DeactivateStudent(context.Background(), id)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
